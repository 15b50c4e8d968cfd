package integration_test_test

import (
	"bytes"
	"context"
	"stem-separator-workers/src/application/audio/transcode"
	"stem-separator-workers/src/application/audio/wav"
	"stem-separator-workers/src/application/integration_test/dummy"
	"stem-separator-workers/src/application/jobs/job_router"
	"stem-separator-workers/src/application/jobs/save_stems"
	"stem-separator-workers/src/application/jobs/separate"
	"stem-separator-workers/src/application/jobs/separate/splitter"
	"stem-separator-workers/src/application/jobs/separate/splitter/file_splitter"
	"stem-separator-workers/src/application/jobs/start"
	"stem-separator-workers/src/application/jobs/transfer"
	"stem-separator-workers/src/application/jobs/transfer/download"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/application/separation/model"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/application/worker"
	"stem-separator-workers/src/lib/storagepath"

	. "github.com/onsi/gomega"

	. "github.com/onsi/ginkgo"
)

var _ = Describe("IntegrationTest", func() {
	var (
		requestID      string
		sourceURL      string
		sourceLength   int
		sourceData     []byte
		pathGenerator  storagepath.Generator
		separateConfig separator.Config

		rabbitMQ          *dummy.RabbitMQ
		fileStore         *dummy.FileStore
		requestStore      *dummy.RequestStore
		youtubeDLExecutor *dummy.YoutubeDLExecutor
		ffmpegExecutor    *dummy.FFmpegExecutor

		queueWorker *worker.QueueWorker
		run         func()
	)

	BeforeEach(func() {
		By("Assigning data to variables", func() {
			requestID = "request-ID"
			sourceURL = "https://www.youtube.com/watch?v=jams"
			sourceLength = 5000
			pathGenerator = storagepath.Generator{
				Host:   "https://storage.test",
				Bucket: "bucket-head",
			}

			// 1920 samples per chunk, so the source spans 3 chunks
			separateConfig = separator.Config{
				FFTSize:            512,
				HopLength:          128,
				FrequencyLimit:     257,
				ClampingFrameCount: 16,
			}

			var err error
			sourceData, err = dummy.SineWAV(workingDir, sourceLength, transcode.SampleRate)
			Expect(err).NotTo(HaveOccurred())
		})

		By("Instantiating all dummies", func() {
			rabbitMQ = dummy.NewRabbitMQ()
			fileStore = dummy.NewDummyFileStore()
			requestStore = dummy.NewDummyRequestStore()
			youtubeDLExecutor = dummy.NewDummyYoutubeDLExecutor()
			ffmpegExecutor = dummy.NewDummyFFmpegExecutor()
		})

		By("Setting up the request store", func() {
			request := entity.NewRequest(requestID, sourceURL, entity.FourStemsSplit)
			err := requestStore.SetRequest(context.Background(), request)
			Expect(err).NotTo(HaveOccurred())
		})

		By("Setting up the youtubeDL executor", func() {
			youtubeDLExecutor.AddURL(sourceURL, sourceData)
		})

		var transferHandler transfer.JobHandler
		By("Creating the transfer job handler", func() {
			youtubedler := download.NewYoutubeDLer("/whatever/youtube-dl", youtubeDLExecutor)
			selectdler := download.NewSelectDLer(youtubedler, download.NewGenericDLer(nil))
			transferrer, err := transfer.NewSourceTransferrer(selectdler, requestStore, fileStore, pathGenerator, workingDir)
			Expect(err).NotTo(HaveOccurred())
			transferHandler = transfer.NewJobHandler(transferrer)
		})

		var separateHandler separate.JobHandler
		By("Creating the separate job handler", func() {
			ffmpeg := transcode.NewFFmpeg("/whatever/ffmpeg", "", ffmpegExecutor)
			localFileSplitter, err := file_splitter.NewLocalFileSplitter(workingDir, ffmpeg, separateConfig, file_splitter.Models{
				TwoStems:  model.RatioMask[stem.TwoStems]{},
				FourStems: model.RatioMask[stem.FourStems]{},
				FiveStems: model.RatioMask[stem.FiveStems]{},
			})
			Expect(err).NotTo(HaveOccurred())
			remoteFileSplitter, err := file_splitter.NewRemoteFileSplitter(workingDir, fileStore, localFileSplitter)
			Expect(err).NotTo(HaveOccurred())
			requestSplitter := splitter.NewRequestSplitter(remoteFileSplitter, requestStore, pathGenerator)
			separateHandler = separate.NewJobHandler(requestSplitter)
		})

		By("Instantiating the worker", func() {
			router := job_router.NewJobRouter(
				requestStore,
				rabbitMQ,
				start.NewJobHandler(requestStore),
				transferHandler,
				separateHandler,
				save_stems.NewJobHandler(requestStore),
			)
			queueWorker = worker.NewQueueWorker(rabbitMQ, "test-queue", router)
		})

		By("Setting up the run routine", func() {
			run = func() {
				go func() {
					defer GinkgoRecover()
					_ = queueWorker.Start()
				}()

				message, err := job_router.CreateStartJobMessage(requestID)
				Expect(err).NotTo(HaveOccurred())
				err = rabbitMQ.Publish(message)
				Expect(err).NotTo(HaveOccurred())
			}
		})
	})

	AfterEach(func() {
		queueWorker.Stop()
	})

	completedRequest := func() (entity.Request, bool) {
		request, err := requestStore.GetRequest(context.Background(), requestID)
		if err != nil {
			return entity.Request{}, false
		}

		return request, request.Status == entity.CompletedStatus
	}

	It("gets 4 acks", func() {
		run()

		Eventually(rabbitMQ.AckCount, "10s").Should(Equal(4))
	})

	It("gets no nacks", func() {
		run()

		Eventually(rabbitMQ.AckCount, "10s").Should(Equal(4))
		Consistently(rabbitMQ.NackCount).Should(Equal(0))
	})

	It("completes the request", func() {
		run()

		Eventually(func() bool {
			_, ok := completedRequest()
			return ok
		}, "10s").Should(BeTrue())

		request, _ := completedRequest()
		Expect(request.Progress).To(Equal(100))
		Expect(request.StatusMessage).To(BeEmpty())
		Expect(request.StatusDebugLog).To(BeEmpty())
	})

	It("keeps the source in the file store", func() {
		run()

		Eventually(func() bool {
			_, ok := completedRequest()
			return ok
		}, "10s").Should(BeTrue())

		contents, err := fileStore.GetFile(context.Background(), pathGenerator.SourcePath(requestID, ".mp3"))
		Expect(err).NotTo(HaveOccurred())
		Expect(bytes.Equal(contents, sourceData)).To(BeTrue())
	})

	It("uploads one full length stem per four stem name", func() {
		run()

		Eventually(func() bool {
			_, ok := completedRequest()
			return ok
		}, "10s").Should(BeTrue())

		request, _ := completedRequest()
		Expect(request.StemURLs).To(HaveLen(4))

		stemDir := pathGenerator.StemDir(requestID, string(entity.FourStemsSplit))
		for _, name := range stem.NamesOf[stem.FourStems]() {
			stemURL, ok := request.StemURLs[string(name)]
			Expect(ok).To(BeTrue())
			Expect(stemURL).To(Equal(stemDir + "/" + string(name) + ".mp3"))

			contents, err := fileStore.GetFile(context.Background(), stemURL)
			Expect(err).NotTo(HaveOccurred())

			reader, err := wav.NewReader(bytes.NewReader(contents), int64(len(contents)))
			Expect(err).NotTo(HaveOccurred())
			Expect(reader.Length()).To(Equal(sourceLength))
			Expect(reader.SampleRate()).To(BeNumerically("==", transcode.SampleRate))
		}
	})

	Describe("When the source can't be downloaded", func() {
		BeforeEach(func() {
			youtubeDLExecutor.Unavailable = true
		})

		It("marks the request as failed", func() {
			run()

			Eventually(func() entity.Status {
				request, err := requestStore.GetRequest(context.Background(), requestID)
				if err != nil {
					return ""
				}
				return request.Status
			}, "10s").Should(Equal(entity.ErrorStatus))

			request, err := requestStore.GetRequest(context.Background(), requestID)
			Expect(err).NotTo(HaveOccurred())
			Expect(request.StatusMessage).To(Equal(transfer.ErrorMessage))
			Expect(request.StatusDebugLog).NotTo(BeEmpty())
		})

		It("nacks the failed job", func() {
			run()

			Eventually(rabbitMQ.NackCount, "10s").Should(Equal(1))
			Expect(rabbitMQ.AckCount()).To(Equal(1))
		})
	})
})

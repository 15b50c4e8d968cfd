package separate_test

import (
	"context"
	"encoding/json"
	"stem-separator-workers/src/application/integration_test/dummy"
	"stem-separator-workers/src/application/jobs/job_message"
	"stem-separator-workers/src/application/jobs/separate"
	"stem-separator-workers/src/application/jobs/separate/splitter"
	"stem-separator-workers/src/application/jobs/separate/splitter/splitterfakes"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/lib/cerr"
	"stem-separator-workers/src/lib/storagepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Separate", func() {
	var (
		requestID      string
		savedSourceURL string
		stemURLs       map[string]string
		pathGenerator  storagepath.Generator

		requestStore *dummy.RequestStore
		fileSplitter *splitterfakes.FakeFileSplitter

		handler separate.JobHandler
		message []byte

		progressSeen []int
	)

	BeforeEach(func() {
		By("Initializing all variables", func() {
			requestID = "request-id"
			savedSourceURL = "https://storage.test/bucket-head/request-id/source/source.mp3"
			stemURLs = map[string]string{
				"vocals":        "https://storage.test/bucket-head/request-id/2stems/vocals.mp3",
				"accompaniment": "https://storage.test/bucket-head/request-id/2stems/accompaniment.mp3",
			}
			pathGenerator = storagepath.Generator{
				Host:   "https://storage.test",
				Bucket: "bucket-head",
			}
			progressSeen = nil

			requestStore = dummy.NewDummyRequestStore()
			fileSplitter = &splitterfakes.FakeFileSplitter{}
		})

		By("Setting up the request store", func() {
			request := entity.NewRequest(requestID, "https://source/jams.mp3", entity.TwoStemsSplit)
			request.Status = entity.ProcessingStatus
			request.Progress = splitter.StartProgress
			Expect(requestStore.SetRequest(context.Background(), request)).To(Succeed())
		})

		By("Setting up the file splitter to report four chunks", func() {
			fileSplitter.SplitFileCalls(func(ctx context.Context, _ string, _ string, _ entity.SplitType, onProgress func(separator.Progress) error) (map[string]string, error) {
				for i := 0; i <= 4; i++ {
					if err := onProgress(separator.Progress{Total: 4, Current: i}); err != nil {
						return nil, err
					}

					request, err := requestStore.GetRequest(ctx, requestID)
					if err != nil {
						return nil, err
					}
					progressSeen = append(progressSeen, request.Progress)
				}

				return stemURLs, nil
			})
		})

		By("Instantiating the handler", func() {
			requestSplitter := splitter.NewRequestSplitter(fileSplitter, requestStore, pathGenerator)
			handler = separate.NewJobHandler(requestSplitter)
		})

		By("Creating the job message", func() {
			var err error
			message, err = json.Marshal(separate.JobParams{
				RequestIdentifier: job_message.RequestIdentifier{RequestID: requestID},
				SavedSourceURL:    savedSourceURL,
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Happy path", func() {
		var (
			params     separate.JobParams
			resultURLs splitter.StemFilePaths
			err        error
		)

		BeforeEach(func() {
			params, resultURLs, err = handler.HandleSeparateJob(context.Background(), message)
		})

		It("doesn't return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the stem URLs and the job params", func() {
			Expect(resultURLs).To(Equal(stemURLs))
			Expect(params.RequestID).To(Equal(requestID))
			Expect(params.SavedSourceURL).To(Equal(savedSourceURL))
		})

		It("splits the saved source into the request's stem directory", func() {
			Expect(fileSplitter.SplitFileCallCount()).To(Equal(1))

			_, sourcePath, destPath, splitType, _ := fileSplitter.SplitFileArgsForCall(0)
			Expect(sourcePath).To(Equal(savedSourceURL))
			Expect(destPath).To(Equal("https://storage.test/bucket-head/request-id/2stems"))
			Expect(splitType).To(Equal(entity.TwoStemsSplit))
		})

		It("maps chunk progress onto the separation span of the request", func() {
			Expect(progressSeen).To(Equal([]int{30, 45, 60, 75, 90}))
		})

		It("describes the chunk progress in the status message", func() {
			request, err := requestStore.GetRequest(context.Background(), requestID)
			Expect(err).NotTo(HaveOccurred())
			Expect(request.StatusMessage).To(Equal("Separating stems (4 of 4 sections done)"))
		})
	})

	Describe("Progress that doesn't move the percentage", func() {
		BeforeEach(func() {
			fileSplitter.SplitFileCalls(func(ctx context.Context, _ string, _ string, _ entity.SplitType, onProgress func(separator.Progress) error) (map[string]string, error) {
				for i := 0; i < 3; i++ {
					if err := onProgress(separator.Progress{Total: 1000, Current: i}); err != nil {
						return nil, err
					}
				}
				return stemURLs, nil
			})
		})

		It("isn't written to the request store", func() {
			_, _, err := handler.HandleSeparateJob(context.Background(), message)
			Expect(err).NotTo(HaveOccurred())

			request, err := requestStore.GetRequest(context.Background(), requestID)
			Expect(err).NotTo(HaveOccurred())
			Expect(request.StatusMessage).To(Equal("Separating stems (0 of 1000 sections done)"))
		})
	})

	Describe("When the splitter fails", func() {
		BeforeEach(func() {
			fileSplitter.SplitFileReturns(nil, cerr.Error("i failed"))
		})

		It("returns an error", func() {
			_, _, err := handler.HandleSeparateJob(context.Background(), message)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("When progress can't be reported", func() {
		BeforeEach(func() {
			requestStore.Unavailable = true
		})

		It("returns an error", func() {
			_, _, err := handler.HandleSeparateJob(context.Background(), message)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Request with an invalid split type", func() {
		BeforeEach(func() {
			request := entity.NewRequest(requestID, "https://source/jams.mp3", entity.InvalidSplitType)
			Expect(requestStore.SetRequest(context.Background(), request)).To(Succeed())
		})

		It("returns an error without splitting", func() {
			_, _, err := handler.HandleSeparateJob(context.Background(), message)
			Expect(err).To(HaveOccurred())
			Expect(fileSplitter.SplitFileCallCount()).To(Equal(0))
		})
	})

	Describe("Message without saved source URL", func() {
		It("returns an error", func() {
			message, err := json.Marshal(separate.JobParams{
				RequestIdentifier: job_message.RequestIdentifier{RequestID: requestID},
			})
			Expect(err).NotTo(HaveOccurred())

			_, _, err = handler.HandleSeparateJob(context.Background(), message)
			Expect(err).To(HaveOccurred())
			Expect(fileSplitter.SplitFileCallCount()).To(Equal(0))
		})
	})
})

var _ = Describe("OverallProgress", func() {
	It("spans the separation range", func() {
		Expect(splitter.OverallProgress(separator.Progress{Total: 10, Current: 0})).To(Equal(splitter.StartProgress))
		Expect(splitter.OverallProgress(separator.Progress{Total: 10, Current: 5})).To(Equal(60))
		Expect(splitter.OverallProgress(separator.Progress{Total: 10, Current: 10})).To(Equal(splitter.EndProgress))
	})

	It("treats an empty source as done", func() {
		Expect(splitter.OverallProgress(separator.Progress{Total: 0, Current: 0})).To(Equal(splitter.EndProgress))
	})
})

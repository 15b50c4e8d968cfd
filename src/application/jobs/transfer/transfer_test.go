package transfer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"stem-separator-workers/src/application/integration_test/dummy"
	"stem-separator-workers/src/application/jobs/job_message"
	"stem-separator-workers/src/application/jobs/transfer"
	"stem-separator-workers/src/application/jobs/transfer/download"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/lib/storagepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Transfer", func() {
	var (
		requestID     string
		sourceURL     string
		sourceContent []byte
		pathGenerator storagepath.Generator

		requestStore      *dummy.RequestStore
		fileStore         *dummy.FileStore
		youtubeDLExecutor *dummy.YoutubeDLExecutor
		server            *httptest.Server

		handler transfer.JobHandler
		message []byte
	)

	BeforeEach(func() {
		By("Initializing all variables", func() {
			requestID = "request-id"
			sourceContent = []byte("cool-jamz")
			pathGenerator = storagepath.Generator{
				Host:   "https://storage.test",
				Bucket: "bucket-head",
			}

			requestStore = dummy.NewDummyRequestStore()
			fileStore = dummy.NewDummyFileStore()
			youtubeDLExecutor = dummy.NewDummyYoutubeDLExecutor()

			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/music/jams.WAV" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				_, _ = w.Write(sourceContent)
			}))
		})

		By("Instantiating the handler", func() {
			selectdler := download.NewSelectDLer(
				download.NewYoutubeDLer("/whatever/youtube-dl", youtubeDLExecutor),
				download.NewGenericDLer(server.Client()),
			)

			transferrer, err := transfer.NewSourceTransferrer(selectdler, requestStore, fileStore, pathGenerator, workingDir)
			Expect(err).NotTo(HaveOccurred())
			handler = transfer.NewJobHandler(transferrer)
		})

		By("Creating the job message", func() {
			var err error
			message, err = json.Marshal(transfer.JobParams{
				RequestIdentifier: job_message.RequestIdentifier{RequestID: requestID},
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	AfterEach(func() {
		server.Close()
	})

	setUpRequest := func() {
		err := requestStore.SetRequest(context.Background(), entity.NewRequest(requestID, sourceURL, entity.TwoStemsSplit))
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("YouTube source", func() {
		BeforeEach(func() {
			sourceURL = "https://www.youtube.com/watch?v=jams"
			youtubeDLExecutor.AddURL(sourceURL, sourceContent)
			setUpRequest()
		})

		It("saves the source as an mp3 in the file store", func() {
			params, savedURL, err := handler.HandleTransferJob(context.Background(), message)
			Expect(err).NotTo(HaveOccurred())
			Expect(params.RequestID).To(Equal(requestID))
			Expect(savedURL).To(Equal("https://storage.test/bucket-head/request-id/source/source.mp3"))

			contents, err := fileStore.GetFile(context.Background(), savedURL)
			Expect(err).NotTo(HaveOccurred())
			Expect(contents).To(Equal(sourceContent))
		})

		Describe("When youtube-dl fails", func() {
			BeforeEach(func() {
				youtubeDLExecutor.Unavailable = true
			})

			It("returns an error", func() {
				_, _, err := handler.HandleTransferJob(context.Background(), message)
				Expect(err).To(HaveOccurred())
				Expect(fileStore.State).To(BeEmpty())
			})
		})
	})

	Describe("Direct link source", func() {
		BeforeEach(func() {
			sourceURL = server.URL + "/music/jams.WAV"
			setUpRequest()
		})

		It("keeps the lowercased extension of the link", func() {
			_, savedURL, err := handler.HandleTransferJob(context.Background(), message)
			Expect(err).NotTo(HaveOccurred())
			Expect(savedURL).To(Equal(pathGenerator.SourcePath(requestID, ".wav")))

			contents, err := fileStore.GetFile(context.Background(), savedURL)
			Expect(err).NotTo(HaveOccurred())
			Expect(contents).To(Equal(sourceContent))
		})

		Describe("When the file store is unavailable", func() {
			BeforeEach(func() {
				fileStore.Unavailable = true
			})

			It("returns an error", func() {
				_, _, err := handler.HandleTransferJob(context.Background(), message)
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Missing direct link", func() {
		BeforeEach(func() {
			sourceURL = server.URL + "/music/gone.mp3"
			setUpRequest()
		})

		It("returns an error", func() {
			_, _, err := handler.HandleTransferJob(context.Background(), message)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Can't reach request store", func() {
		BeforeEach(func() {
			sourceURL = "https://www.youtube.com/watch?v=jams"
			setUpRequest()
			requestStore.Unavailable = true
		})

		It("returns an error", func() {
			_, _, err := handler.HandleTransferJob(context.Background(), message)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Poorly formed message", func() {
		It("returns an error", func() {
			_, _, err := handler.HandleTransferJob(context.Background(), []byte(`{"request":`))
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("SelectDLer", func() {
	It("recognizes YouTube hosts", func() {
		Expect(download.IsYoutubeHost("www.youtube.com")).To(BeTrue())
		Expect(download.IsYoutubeHost("music.youtube.com")).To(BeTrue())
		Expect(download.IsYoutubeHost("youtu.be")).To(BeTrue())
		Expect(download.IsYoutubeHost("example.com")).To(BeFalse())
	})
})

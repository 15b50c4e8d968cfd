package application

import (
	"net/http"
	"os"
	"stem-separator-workers/src/application/audio/transcode"
	filestore "stem-separator-workers/src/application/cloud_storage/store"
	"stem-separator-workers/src/application/executor"
	"stem-separator-workers/src/application/jobs/job_router"
	"stem-separator-workers/src/application/jobs/save_stems"
	"stem-separator-workers/src/application/jobs/separate"
	"stem-separator-workers/src/application/jobs/separate/splitter"
	"stem-separator-workers/src/application/jobs/separate/splitter/file_splitter"
	"stem-separator-workers/src/application/jobs/start"
	"stem-separator-workers/src/application/jobs/transfer"
	"stem-separator-workers/src/application/jobs/transfer/download"
	"stem-separator-workers/src/application/publish"
	"stem-separator-workers/src/application/requests/entity"
	requeststore "stem-separator-workers/src/application/requests/store"
	"stem-separator-workers/src/application/separation/model"
	"stem-separator-workers/src/application/separation/modelconfig"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/application/worker"
	"stem-separator-workers/src/lib/cerr"
	"stem-separator-workers/src/lib/storagepath"
	"time"

	"github.com/apex/log"
	"github.com/streadway/amqp"
	"google.golang.org/api/option"
)

const modelRequestTimeout = 2 * time.Minute

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}

	return t
}

type App struct {
	worker *worker.QueueWorker
}

func NewApp(config Config) App {
	consumerConn := must(amqp.Dial(config.RabbitMQURL))
	producerConn := must(amqp.Dial(config.RabbitMQURL))

	return App{
		worker: newWorker(config, consumerConn, producerConn),
	}
}

func (a *App) Start() error {
	if err := a.worker.Start(); err != nil {
		return cerr.Wrap(err).Error("Failed to start worker")
	}

	return nil
}

func (a *App) Stop() {
	a.worker.Stop()
}

func newWorker(config Config, consumerConn *amqp.Connection, producerConn *amqp.Connection) *worker.QueueWorker {
	publisher := must(publish.NewRabbitMQPublisher(producerConn, config.RabbitMQQueueName))
	requestStore := requeststore.NewDynamoDBRequestStore(requeststore.NewDynamoDB(config.DynamoConfig))

	return must(worker.NewQueueWorkerFromConnection(
		consumerConn,
		config.RabbitMQQueueName,
		newJobRouter(config, requestStore, publisher)))
}

func newGoogleFileStore(config CloudStorageConfig) filestore.GoogleFileStore {
	if config.Endpoint != "" {
		return must(filestore.NewGoogleFileStore(
			config.Host,
			option.WithEndpoint(config.Endpoint),
			option.WithoutAuthentication(),
		))
	}

	return must(filestore.NewGoogleFileStore(
		config.Host,
		option.WithCredentialsJSON([]byte(config.SecretKey)),
	))
}

func newJobRouter(config Config, requestStore entity.RequestStore, publisher publish.Publisher) job_router.JobRouter {
	pathGenerator := storagepath.Generator{
		Host:   config.CloudStorageConfig.Host,
		Bucket: config.CloudStorageConfig.BucketName,
	}

	fileStore := newGoogleFileStore(config.CloudStorageConfig)

	return job_router.NewJobRouter(
		requestStore,
		publisher,
		start.NewJobHandler(requestStore),
		newTransferJobHandler(config, requestStore, fileStore, pathGenerator),
		newSeparateJobHandler(config, requestStore, fileStore, pathGenerator),
		save_stems.NewJobHandler(requestStore))
}

func newTransferJobHandler(config Config, requestStore entity.RequestStore, fileStore filestore.GoogleFileStore, pathGenerator storagepath.Generator) transfer.JobHandler {
	if err := os.MkdirAll(config.TransferWorkingDirPath, os.ModePerm); err != nil {
		panic(err)
	}

	var youtubedler download.Downloader
	if config.YoutubeDLBinPath != "" {
		youtubedler = download.NewYoutubeDLer(config.YoutubeDLBinPath, executor.BinaryFileExecutor{})
	}

	selectdler := download.NewSelectDLer(youtubedler, download.NewGenericDLer(http.DefaultClient))

	transferrer := must(transfer.NewSourceTransferrer(
		selectdler,
		requestStore,
		fileStore,
		pathGenerator,
		config.TransferWorkingDirPath,
	))

	return transfer.NewJobHandler(transferrer)
}

func newSeparateJobHandler(config Config, requestStore entity.RequestStore, fileStore filestore.GoogleFileStore, pathGenerator storagepath.Generator) separate.JobHandler {
	if err := os.MkdirAll(config.SeparatorWorkingDirPath, os.ModePerm); err != nil {
		panic(err)
	}

	settings := must(modelconfig.Load(config.SeparationConfigPath))
	separatorConfig := settings.Apply(separator.DefaultConfig())

	log.WithFields(log.Fields{
		"fft_size":             separatorConfig.FFTSize,
		"hop_length":           separatorConfig.HopLength,
		"frequency_limit":      separatorConfig.FrequencyLimit,
		"clamping_frame_count": separatorConfig.ClampingFrameCount,
	}).Info("Loaded separation config")

	ffmpeg := transcode.NewFFmpeg(config.FFmpegBinPath, config.SeparatorWorkingDirPath, executor.BinaryFileExecutor{})

	localSplitter := must(file_splitter.NewLocalFileSplitter(
		config.SeparatorWorkingDirPath,
		ffmpeg,
		separatorConfig,
		newModels(config.ModelServingURL, settings),
	))

	remoteSplitter := must(file_splitter.NewRemoteFileSplitter(
		config.SeparatorWorkingDirPath,
		fileStore,
		localSplitter,
	))

	requestSplitter := splitter.NewRequestSplitter(remoteSplitter, requestStore, pathGenerator)
	return separate.NewJobHandler(requestSplitter)
}

func newModels(servingURL string, settings modelconfig.Settings) file_splitter.Models {
	client := &http.Client{Timeout: modelRequestTimeout}

	return file_splitter.Models{
		TwoStems: must(model.NewServingModel[stem.TwoStems](
			client, servingURL, settings.ModelName(stem.SplitTypeOf[stem.TwoStems]()))),
		FourStems: must(model.NewServingModel[stem.FourStems](
			client, servingURL, settings.ModelName(stem.SplitTypeOf[stem.FourStems]()))),
		FiveStems: must(model.NewServingModel[stem.FiveStems](
			client, servingURL, settings.ModelName(stem.SplitTypeOf[stem.FiveStems]()))),
	}
}

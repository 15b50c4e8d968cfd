package application

import (
	requeststore "stem-separator-workers/src/application/requests/store"
)

type CloudStorageConfig struct {
	Host       string
	BucketName string
	SecretKey  string
	// Endpoint, when set, points the client at a local fake and skips credentials.
	Endpoint string
}

type Config struct {
	RabbitMQURL        string
	RabbitMQQueueName  string
	DynamoConfig       requeststore.Config
	CloudStorageConfig CloudStorageConfig

	FFmpegBinPath string
	// YoutubeDLBinPath is optional; without it YouTube links are fetched like any other URL.
	YoutubeDLBinPath string

	TransferWorkingDirPath  string
	SeparatorWorkingDirPath string

	ModelServingURL      string
	SeparationConfigPath string
}

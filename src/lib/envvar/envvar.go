package envvar

import (
	"fmt"
	"os"
)

const (
	ENVIRONMENT                      = "ENVIRONMENT"
	AWS_ACCESS_KEY_ID                = "AWS_ACCESS_KEY_ID"
	AWS_SECRET_ACCESS_KEY            = "AWS_SECRET_ACCESS_KEY"
	AWS_REGION                       = "AWS_REGION"
	RABBITMQ_URL                     = "RABBITMQ_URL"
	RABBITMQ_QUEUE_NAME              = "RABBITMQ_QUEUE_NAME"
	GOOGLE_CLOUD_KEY                 = "GOOGLE_CLOUD_KEY"
	GOOGLE_CLOUD_STORAGE_BUCKET_NAME = "GOOGLE_CLOUD_STORAGE_BUCKET_NAME"
	GOOGLE_CLOUD_STORAGE_ENDPOINT    = "GOOGLE_CLOUD_STORAGE_ENDPOINT"
	FFMPEG_BIN_PATH                  = "FFMPEG_BIN_PATH"
	TRANSFER_WORKING_DIR_PATH        = "TRANSFER_WORKING_DIR_PATH"
	SEPARATOR_WORKING_DIR_PATH       = "SEPARATOR_WORKING_DIR_PATH"
	MODEL_SERVING_URL                = "MODEL_SERVING_URL"
	SEPARATION_CONFIG_PATH           = "SEPARATION_CONFIG_PATH"
	YOUTUBEDL_BIN_PATH               = "YOUTUBEDL_BIN_PATH"
	DYNAMODB_ENDPOINT                = "DYNAMODB_ENDPOINT"
)

func MustGet(key string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet {
		panic(fmt.Sprintf("No env variable found for key %s", key))
	}

	if val == "" {
		panic(fmt.Sprintf("Env variable is empty for key %s", key))
	}

	return val
}

func GetOrDefault(key string, defaultVal string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet || val == "" {
		return defaultVal
	}

	return val
}

package job_message

import (
	"encoding/json"
	"stem-separator-workers/src/lib/cerr"

	"github.com/streadway/amqp"
)

type RequestIdentifier struct {
	RequestID string `json:"request_id"`
}

func (r RequestIdentifier) GetRequestID() string {
	return r.RequestID
}

type identified interface {
	GetRequestID() string
}

func Create(jobType string, params interface{}) (amqp.Publishing, error) {
	jsonBytes, err := json.Marshal(params)
	if err != nil {
		return amqp.Publishing{}, cerr.Field("job_type", jobType).
			Wrap(err).Error("Failed to marshal job params")
	}

	return amqp.Publishing{
		Type: jobType,
		Body: jsonBytes,
	}, nil
}

// Unmarshal decodes message into params and checks the request ID every job carries.
func Unmarshal(message []byte, params identified) error {
	if err := json.Unmarshal(message, params); err != nil {
		return cerr.Wrap(err).Error("Failed to unmarshal message JSON")
	}

	if params.GetRequestID() == "" {
		return cerr.Field("message", string(message)).Error("Missing request ID")
	}

	return nil
}

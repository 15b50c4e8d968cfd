package save_stems

import (
	"context"
	"stem-separator-workers/src/application/jobs/job_message"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/lib/cerr"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const JobType string = "save_stems"
const ErrorMessage string = "Failed to save the separated stems"

//counterfeiter:generate . SaveStemsJobHandler
type SaveStemsJobHandler interface {
	HandleSaveStemsJob(ctx context.Context, message []byte) error
}

type JobParams struct {
	job_message.RequestIdentifier
	StemURLs map[string]string `json:"stem_urls"`
}

var _ SaveStemsJobHandler = JobHandler{}

func NewJobHandler(requestStore entity.RequestStore) JobHandler {
	return JobHandler{
		requestStore: requestStore,
	}
}

type JobHandler struct {
	requestStore entity.RequestStore
}

func (s JobHandler) HandleSaveStemsJob(ctx context.Context, message []byte) error {
	params := JobParams{}
	if err := job_message.Unmarshal(message, &params); err != nil {
		return cerr.Wrap(err).Error("Failed to read save stems job message")
	}

	errctx := cerr.Field("request_id", params.RequestID).Field("stem_urls", params.StemURLs)

	if len(params.StemURLs) == 0 {
		return errctx.Error("No stem URLs to save")
	}

	updater := func(request entity.Request) (entity.Request, error) {
		request.StemURLs = map[string]string{}
		for stemName, url := range params.StemURLs {
			request.StemURLs[stemName] = url
		}

		request.Status = entity.CompletedStatus
		request.StatusMessage = ""
		request.Progress = 100
		return request, nil
	}

	if err := s.requestStore.UpdateRequest(ctx, params.RequestID, updater); err != nil {
		return errctx.Wrap(err).Error("Failed to write stem URLs to the request")
	}

	return nil
}

package start

import (
	"context"
	"stem-separator-workers/src/application/jobs/job_message"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/lib/cerr"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const JobType string = "start_separation"
const ErrorMessage string = "Failed to start processing the separation request"

//counterfeiter:generate . StartJobHandler
type StartJobHandler interface {
	HandleStartJob(ctx context.Context, message []byte) (JobParams, error)
}

type JobParams struct {
	job_message.RequestIdentifier
}

var _ StartJobHandler = JobHandler{}

func NewJobHandler(requestStore entity.RequestStore) JobHandler {
	return JobHandler{
		requestStore: requestStore,
	}
}

type JobHandler struct {
	requestStore entity.RequestStore
}

func (d JobHandler) HandleStartJob(ctx context.Context, message []byte) (JobParams, error) {
	params := JobParams{}
	if err := job_message.Unmarshal(message, &params); err != nil {
		return JobParams{}, cerr.Wrap(err).Error("Failed to read start job message")
	}

	errctx := cerr.Field("request_id", params.RequestID)

	updater := func(request entity.Request) (entity.Request, error) {
		if request.Status != entity.RequestedStatus {
			return entity.Request{}, errctx.Field("status", request.Status).
				Error("Request is not in requested status, abort processing to be safe")
		}

		if _, err := entity.ConvertToSplitType(string(request.SplitType)); err != nil {
			return entity.Request{}, errctx.Wrap(err).Error("Request has an unknown split type")
		}

		request.Status = entity.ProcessingStatus
		request.Progress = 0
		return request, nil
	}

	if err := d.requestStore.UpdateRequest(ctx, params.RequestID, updater); err != nil {
		return JobParams{}, errctx.Wrap(err).Error("Failed to set the request status")
	}

	return params, nil
}

package transfer

import (
	"context"
	"stem-separator-workers/src/application/jobs/job_message"
	"stem-separator-workers/src/lib/cerr"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const JobType string = "transfer_source"
const ErrorMessage string = "Failed to download source audio for processing"

//counterfeiter:generate . TransferJobHandler
type TransferJobHandler interface {
	HandleTransferJob(ctx context.Context, message []byte) (JobParams, string, error)
}

type JobParams struct {
	job_message.RequestIdentifier
}

var _ TransferJobHandler = JobHandler{}

func NewJobHandler(transferrer SourceTransferrer) JobHandler {
	return JobHandler{
		transferrer: transferrer,
	}
}

type JobHandler struct {
	transferrer SourceTransferrer
}

func (d JobHandler) HandleTransferJob(ctx context.Context, message []byte) (JobParams, string, error) {
	params := JobParams{}
	if err := job_message.Unmarshal(message, &params); err != nil {
		return JobParams{}, "", cerr.Wrap(err).Error("Failed to read transfer job message")
	}

	savedSourceURL, err := d.transferrer.Transfer(ctx, params.RequestID)
	if err != nil {
		return JobParams{}, "", cerr.Field("request_id", params.RequestID).
			Wrap(err).Error("Failed to transfer source")
	}

	return params, savedSourceURL, nil
}

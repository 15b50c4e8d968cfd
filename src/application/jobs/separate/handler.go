package separate

import (
	"context"
	"stem-separator-workers/src/application/jobs/job_message"
	"stem-separator-workers/src/application/jobs/separate/splitter"
	"stem-separator-workers/src/lib/cerr"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const JobType string = "separate"
const ErrorMessage string = "Failed to separate the source into stems"

//counterfeiter:generate . SeparateJobHandler
type SeparateJobHandler interface {
	HandleSeparateJob(ctx context.Context, message []byte) (JobParams, splitter.StemFilePaths, error)
}

type JobParams struct {
	job_message.RequestIdentifier
	SavedSourceURL string `json:"saved_source_url"`
}

var _ SeparateJobHandler = JobHandler{}

func NewJobHandler(requestSplitter splitter.RequestSplitter) JobHandler {
	return JobHandler{
		requestSplitter: requestSplitter,
	}
}

type JobHandler struct {
	requestSplitter splitter.RequestSplitter
}

func (s JobHandler) HandleSeparateJob(ctx context.Context, message []byte) (JobParams, splitter.StemFilePaths, error) {
	params := JobParams{}
	if err := job_message.Unmarshal(message, &params); err != nil {
		return JobParams{}, nil, cerr.Wrap(err).Error("Failed to read separate job message")
	}

	errctx := cerr.Field("request_id", params.RequestID).
		Field("saved_source_url", params.SavedSourceURL)

	if params.SavedSourceURL == "" {
		return JobParams{}, nil, errctx.Error("Missing saved source URL")
	}

	stemURLs, err := s.requestSplitter.SplitRequest(ctx, params.RequestID, params.SavedSourceURL)
	if err != nil {
		return JobParams{}, nil, errctx.Wrap(err).Error("Failed to separate the request's source")
	}

	return params, stemURLs, nil
}

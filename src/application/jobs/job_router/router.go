package job_router

import (
	"context"
	"encoding/json"
	"fmt"
	"stem-separator-workers/src/application/jobs/job_message"
	"stem-separator-workers/src/application/jobs/save_stems"
	"stem-separator-workers/src/application/jobs/separate"
	"stem-separator-workers/src/application/jobs/separate/splitter"
	"stem-separator-workers/src/application/jobs/start"
	"stem-separator-workers/src/application/jobs/transfer"
	"stem-separator-workers/src/application/publish"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/lib/cerr"

	"github.com/apex/log"
	"github.com/streadway/amqp"
)

func NewJobRouter(
	requestStore entity.RequestStore,
	publisher publish.Publisher,
	startHandler start.StartJobHandler,
	transferHandler transfer.TransferJobHandler,
	separateHandler separate.SeparateJobHandler,
	saveStemsHandler save_stems.SaveStemsJobHandler,
) JobRouter {
	return JobRouter{
		requestStore:     requestStore,
		publisher:        publisher,
		startHandler:     startHandler,
		transferHandler:  transferHandler,
		separateHandler:  separateHandler,
		saveStemsHandler: saveStemsHandler,
	}
}

type JobRouter struct {
	publisher    publish.Publisher
	requestStore entity.RequestStore

	startHandler     start.StartJobHandler
	transferHandler  transfer.TransferJobHandler
	separateHandler  separate.SeparateJobHandler
	saveStemsHandler save_stems.SaveStemsJobHandler
}

func (j JobRouter) HandleMessage(ctx context.Context, message amqp.Delivery) error {
	err := j.handleMessageWithoutErrorHandling(ctx, message)
	if err != nil {
		if reportErr := j.handleError(message, err); reportErr != nil {
			cerr.Log(cerr.Wrap(reportErr).Error("Failed to report job error to the request store"))
		}
		return err
	}

	return nil
}

func (j JobRouter) handleMessageWithoutErrorHandling(ctx context.Context, message amqp.Delivery) error {
	var nextJobMsg amqp.Publishing
	var nextJobMessage string
	var nextJobProgress int
	wasLastJob := false

	switch message.Type {
	case start.JobType:
		startJobParams, err := j.startHandler.HandleStartJob(ctx, message.Body)
		if err != nil {
			return cerr.Field("message_body", string(message.Body)).Wrap(err).Error("Failed to handle start job")
		}

		nextJobMessage = "Retrieving the source recording from the provided URL"
		nextJobProgress = 10
		nextJobMsg, err = createTransferJobMessage(startJobParams.RequestID)
		if err != nil {
			return cerr.Field("request_id", startJobParams.RequestID).
				Wrap(err).Error("Failed to create transfer job message")
		}

	case transfer.JobType:
		transferJobParams, savedSourceURL, err := j.transferHandler.HandleTransferJob(ctx, message.Body)
		if err != nil {
			return cerr.Field("message_body", string(message.Body)).Wrap(err).Error("Failed to handle transfer job")
		}

		nextJobMessage = "Separating the recording into stems"
		nextJobProgress = splitter.StartProgress
		nextJobMsg, err = createSeparateJobMessage(transferJobParams.RequestID, savedSourceURL)
		if err != nil {
			return cerr.Field("request_id", transferJobParams.RequestID).
				Field("saved_source_url", savedSourceURL).
				Wrap(err).Error("Failed to create separate job message")
		}

	case separate.JobType:
		separateJobParams, stemURLs, err := j.separateHandler.HandleSeparateJob(ctx, message.Body)
		if err != nil {
			return cerr.Field("message_body", string(message.Body)).Wrap(err).Error("Failed to handle separate job")
		}

		nextJobMessage = "Saving separated stems"
		nextJobProgress = splitter.EndProgress
		nextJobMsg, err = createSaveStemsJobMessage(separateJobParams.RequestID, stemURLs)
		if err != nil {
			return cerr.Field("request_id", separateJobParams.RequestID).
				Field("stem_urls", stemURLs).
				Wrap(err).Error("Failed to create save stems job message")
		}

	case save_stems.JobType:
		if err := j.saveStemsHandler.HandleSaveStemsJob(ctx, message.Body); err != nil {
			return cerr.Field("message_body", string(message.Body)).Wrap(err).Error("Failed to handle save stems job")
		}

		wasLastJob = true

	default:
		return cerr.Field("job_type", message.Type).Error("Unrecognized amqp job type")
	}

	if wasLastJob {
		return nil
	}

	if err := j.updateProgress(ctx, message, nextJobMessage, nextJobProgress); err != nil {
		return cerr.Wrap(err).Error("Failed to update request progress")
	}

	if err := j.publisher.Publish(nextJobMsg); err != nil {
		return cerr.Field("next_job_type", nextJobMsg.Type).
			Wrap(err).Error("Failed to publish next job message")
	}

	log.WithFields(log.Fields{
		"job_type":      message.Type,
		"next_job_type": nextJobMsg.Type,
	}).Info("Published next job")

	return nil
}

func (j JobRouter) updateProgress(ctx context.Context, message amqp.Delivery, statusMessage string, progress int) error {
	var params job_message.RequestIdentifier
	if err := json.Unmarshal(message.Body, &params); err != nil {
		return cerr.Wrap(err).Error("Failed to unmarshal job message")
	}

	updater := func(request entity.Request) (entity.Request, error) {
		request.StatusMessage = statusMessage
		request.Progress = progress
		return request, nil
	}

	if err := j.requestStore.UpdateRequest(ctx, params.RequestID, updater); err != nil {
		return cerr.Field("request_id", params.RequestID).Wrap(err).Error("Failed to update request")
	}

	return nil
}

func (j JobRouter) getErrorMessage(jobType string) string {
	switch jobType {
	case start.JobType:
		return start.ErrorMessage
	case transfer.JobType:
		return transfer.ErrorMessage
	case separate.JobType:
		return separate.ErrorMessage
	case save_stems.JobType:
		return save_stems.ErrorMessage
	default:
		return fmt.Sprintf("Unrecognized job type: %s", jobType)
	}
}

// handleError marks the request as failed, independent of the job's context.
func (j JobRouter) handleError(message amqp.Delivery, jobError error) error {
	var params job_message.RequestIdentifier
	if err := json.Unmarshal(message.Body, &params); err != nil {
		return cerr.Wrap(err).Error("Failed to read request ID from failed job")
	}

	if params.RequestID == "" {
		return cerr.Field("job_type", message.Type).Error("Failed job carries no request ID")
	}

	updater := func(request entity.Request) (entity.Request, error) {
		request.Status = entity.ErrorStatus
		request.StatusMessage = j.getErrorMessage(message.Type)
		request.StatusDebugLog = jobError.Error()
		return request, nil
	}

	if err := j.requestStore.UpdateRequest(context.Background(), params.RequestID, updater); err != nil {
		return cerr.Field("request_id", params.RequestID).Wrap(err).Error("Failed to update request")
	}

	return nil
}

func createTransferJobMessage(requestID string) (amqp.Publishing, error) {
	return job_message.Create(transfer.JobType, transfer.JobParams{
		RequestIdentifier: job_message.RequestIdentifier{RequestID: requestID},
	})
}

func createSeparateJobMessage(requestID string, savedSourceURL string) (amqp.Publishing, error) {
	return job_message.Create(separate.JobType, separate.JobParams{
		RequestIdentifier: job_message.RequestIdentifier{RequestID: requestID},
		SavedSourceURL:    savedSourceURL,
	})
}

func createSaveStemsJobMessage(requestID string, stemURLs map[string]string) (amqp.Publishing, error) {
	return job_message.Create(save_stems.JobType, save_stems.JobParams{
		RequestIdentifier: job_message.RequestIdentifier{RequestID: requestID},
		StemURLs:          stemURLs,
	})
}

// CreateStartJobMessage is the message that kicks off processing of a request.
func CreateStartJobMessage(requestID string) (amqp.Publishing, error) {
	return job_message.Create(start.JobType, start.JobParams{
		RequestIdentifier: job_message.RequestIdentifier{RequestID: requestID},
	})
}

package splitter

import (
	"context"
	"fmt"
	"math"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/lib/cerr"
	"stem-separator-workers/src/lib/storagepath"

	"github.com/apex/log"
)

// Separation progress is reported within [StartProgress, EndProgress] of the whole request.
const (
	StartProgress = 30
	EndProgress   = 90
)

type RequestSplitter struct {
	requestStore  entity.RequestStore
	splitter      FileSplitter
	pathGenerator storagepath.Generator
}

func NewRequestSplitter(splitter FileSplitter, requestStore entity.RequestStore, pathGenerator storagepath.Generator) RequestSplitter {
	return RequestSplitter{
		requestStore:  requestStore,
		splitter:      splitter,
		pathGenerator: pathGenerator,
	}
}

func (r RequestSplitter) SplitRequest(ctx context.Context, requestID string, savedSourceURL string) (StemFilePaths, error) {
	errctx := cerr.Fields(cerr.F{
		"request_id":       requestID,
		"saved_source_url": savedSourceURL,
	})

	request, err := r.requestStore.GetRequest(ctx, requestID)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to get request from request store")
	}

	splitType, err := entity.ConvertToSplitType(string(request.SplitType))
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to recognize the request's split type")
	}

	destPath := r.pathGenerator.StemDir(requestID, string(splitType))
	return r.splitter.SplitFile(ctx, savedSourceURL, destPath, splitType, r.progressReporter(ctx, requestID))
}

// progressReporter writes chunk progress to the request, skipping writes that
// would not change the stored percentage.
func (r RequestSplitter) progressReporter(ctx context.Context, requestID string) ProgressFn {
	lastReported := -1

	return func(progress separator.Progress) error {
		overall := OverallProgress(progress)
		if overall == lastReported {
			return nil
		}

		message := fmt.Sprintf("Separating stems (%d of %d sections done)", progress.Current, progress.Total)
		err := r.requestStore.UpdateRequest(ctx, requestID, func(request entity.Request) (entity.Request, error) {
			request.Progress = overall
			request.StatusMessage = message
			return request, nil
		})
		if err != nil {
			return cerr.Field("request_id", requestID).Wrap(err).Error("Failed to report separation progress")
		}

		log.WithFields(log.Fields{
			"request_id": requestID,
			"progress":   overall,
		}).Debug("Reported separation progress")

		lastReported = overall
		return nil
	}
}

func OverallProgress(progress separator.Progress) int {
	span := float64(EndProgress - StartProgress)
	return StartProgress + int(math.Floor(span*progress.Percent()/100))
}

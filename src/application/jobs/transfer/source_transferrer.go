package transfer

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	cloudstorage "stem-separator-workers/src/application/cloud_storage/entity"
	"stem-separator-workers/src/application/jobs/transfer/download"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/lib/cerr"
	"stem-separator-workers/src/lib/storagepath"
	"stem-separator-workers/src/lib/working_dir"
	"strings"

	"github.com/apex/log"
)

const defaultSourceExtension = ".mp3"

func NewSourceTransferrer(downloader download.Downloader, requestStore entity.RequestStore, fileStore cloudstorage.FileStore, pathGenerator storagepath.Generator, workingDirStr string) (SourceTransferrer, error) {
	workingDir, err := working_dir.NewWorkingDir(workingDirStr)
	if err != nil {
		return SourceTransferrer{}, cerr.Field("working_dir_str", workingDirStr).Wrap(err).Error("Failed to create working dir")
	}

	return SourceTransferrer{
		fileStore:     fileStore,
		requestStore:  requestStore,
		downloader:    downloader,
		pathGenerator: pathGenerator,
		workingDir:    workingDir,
	}, nil
}

// SourceTransferrer copies a request's source recording into the file store.
type SourceTransferrer struct {
	fileStore     cloudstorage.FileStore
	requestStore  entity.RequestStore
	downloader    download.Downloader
	pathGenerator storagepath.Generator
	workingDir    working_dir.WorkingDir
}

func (t SourceTransferrer) Transfer(ctx context.Context, requestID string) (string, error) {
	errctx := cerr.Field("request_id", requestID)
	logger := log.WithField("request_id", requestID)

	request, err := t.requestStore.GetRequest(ctx, requestID)
	if err != nil {
		return "", errctx.Wrap(err).Error("Failed to get request")
	}

	errctx = errctx.Field("source_url", request.SourceURL)
	extension := sourceExtension(request.SourceURL)

	logger.Info("Creating temp dir to store downloaded source file temporarily")
	tempDir, cleanUpTempDir, err := t.workingDir.MakeTempDir("transfer")
	if err != nil {
		return "", errctx.Wrap(err).Error("Failed to make a temp dir")
	}
	defer cleanUpTempDir()

	tempFilePath := filepath.Join(tempDir, "source"+extension)

	logger.Info("Downloading source")
	if err := t.downloader.Download(ctx, request.SourceURL, tempFilePath); err != nil {
		return "", errctx.Wrap(err).Error("Failed to download source")
	}

	logger.Info("Reading downloaded file to memory")
	fileContent, err := os.ReadFile(tempFilePath)
	if err != nil {
		return "", errctx.Wrap(err).Error("Failed to read downloaded source")
	}

	destinationURL := t.pathGenerator.SourcePath(requestID, extension)

	logger.WithField("destination_url", destinationURL).Info("Writing file to remote file store")
	if err := t.fileStore.WriteFile(ctx, destinationURL, fileContent); err != nil {
		return "", errctx.Wrap(err).Error("Failed to write source to the file store")
	}

	return destinationURL, nil
}

// sourceExtension is the lowercased extension of the URL path,
// mp3 for YouTube links and URLs without one.
func sourceExtension(sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil || download.IsYoutubeHost(parsed.Host) {
		return defaultSourceExtension
	}

	ext := strings.ToLower(path.Ext(parsed.Path))
	if ext == "" || len(ext) > 5 {
		return defaultSourceExtension
	}

	return ext
}

package file_splitter

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	cloudstorage "stem-separator-workers/src/application/cloud_storage/entity"
	"stem-separator-workers/src/application/jobs/separate/splitter"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/lib/cerr"
	"stem-separator-workers/src/lib/working_dir"

	"github.com/apex/log"
)

var _ splitter.FileSplitter = RemoteFileSplitter{}

func NewRemoteFileSplitter(workingDirStr string, remoteFileStore cloudstorage.FileStore, localSplitter splitter.FileSplitter) (RemoteFileSplitter, error) {
	workingDir, err := working_dir.NewWorkingDir(workingDirStr)
	if err != nil {
		return RemoteFileSplitter{}, cerr.Wrap(err).Error("Failed to create working directory object")
	}

	return RemoteFileSplitter{
		workingDir:      workingDir,
		remoteFileStore: remoteFileStore,
		localSplitter:   localSplitter,
	}, nil
}

// RemoteFileSplitter runs a local splitter on a file store source and uploads the stems next to it.
type RemoteFileSplitter struct {
	workingDir      working_dir.WorkingDir
	remoteFileStore cloudstorage.FileStore
	localSplitter   splitter.FileSplitter
}

func (r RemoteFileSplitter) SplitFile(ctx context.Context, remoteSourcePath string, remoteDestPath string, splitType entity.SplitType, onProgress splitter.ProgressFn) (splitter.StemFilePaths, error) {
	errctx := cerr.Fields(cerr.F{
		"remote_source_path": remoteSourcePath,
		"remote_dest_path":   remoteDestPath,
		"split_type":         splitType,
	})

	logger := log.WithFields(log.Fields{
		"remote_source_path": remoteSourcePath,
		"remote_dest_path":   remoteDestPath,
		"split_type":         splitType,
	})

	logger.Info("Fetching file from remote file store")
	fileContents, err := r.remoteFileStore.GetFile(ctx, remoteSourcePath)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to get remote file")
	}

	logger.Info("Creating temp directory to store the source")
	sourceDir, removeSourceDir, err := r.workingDir.MakeTempDir("source")
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create directory to save source")
	}
	defer removeSourceDir()

	sourceFilePath := filepath.Join(sourceDir, "source"+path.Ext(remoteSourcePath))
	if err := os.WriteFile(sourceFilePath, fileContents, os.ModePerm); err != nil {
		return nil, errctx.Wrap(err).Error("Failed to write file temporarily to disk")
	}

	logger.Info("Creating temp directory to store the stems")
	stemDir, removeStemDir, err := r.workingDir.MakeTempDir("stems")
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create directory to save stems")
	}
	defer removeStemDir()

	logger.Info("Starting to run the separation")
	localFilePaths, err := r.localSplitter.SplitFile(ctx, sourceFilePath, stemDir, splitType, onProgress)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to run local stem splitter")
	}

	logger.Info("Uploading stem files")
	remoteFilePaths, err := r.uploadStems(ctx, remoteDestPath, localFilePaths)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to upload stem files")
	}

	return remoteFilePaths, nil
}

func (r RemoteFileSplitter) uploadStem(ctx context.Context, done chan<- error, sourceStemFilePath string, destStemFilePath string) {
	logger := log.WithFields(log.Fields{
		"source_stem_file_path": sourceStemFilePath,
		"dest_stem_file_path":   destStemFilePath,
	})

	logger.Info("Uploading stem")

	fileContents, err := os.ReadFile(sourceStemFilePath)
	if err != nil {
		logger.Error("Failed to read local file")
		done <- cerr.Field("path", sourceStemFilePath).Wrap(err).Error("Failed to read local file")
		return
	}

	if err := r.remoteFileStore.WriteFile(ctx, destStemFilePath, fileContents); err != nil {
		logger.Error("Failed to upload stem file")
		done <- cerr.Field("url", destStemFilePath).Wrap(err).Error("Failed to upload stem file")
		return
	}

	done <- nil
}

func (r RemoteFileSplitter) uploadStems(ctx context.Context, remoteStemDir string, localStemFilePaths splitter.StemFilePaths) (splitter.StemFilePaths, error) {
	uploadResultChannels := []chan error{}
	remoteFilePaths := splitter.StemFilePaths{}

	log.Info("Spinning off upload threads")

	for stemKey, localStemFilePath := range localStemFilePaths {
		// capacity 1 lets uploads still running after an early return complete
		resultChannel := make(chan error, 1)
		uploadResultChannels = append(uploadResultChannels, resultChannel)

		remoteDestFilePath := fmt.Sprintf("%s/%s%s", remoteStemDir, stemKey, filepath.Ext(localStemFilePath))
		remoteFilePaths[stemKey] = remoteDestFilePath

		go r.uploadStem(ctx, resultChannel, localStemFilePath, remoteDestFilePath)
	}

	log.Info("Waiting for upload threads to finish")
	for _, resultChannel := range uploadResultChannels {
		if err := <-resultChannel; err != nil {
			return nil, err
		}
	}

	return remoteFilePaths, nil
}

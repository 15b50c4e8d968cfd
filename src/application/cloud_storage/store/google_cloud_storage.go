package store

import (
	"context"
	"io"
	"stem-separator-workers/src/application/cloud_storage/entity"
	"stem-separator-workers/src/lib/cerr"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var _ entity.FileStore = GoogleFileStore{}

const GOOGLE_STORAGE_HOST = "https://storage.googleapis.com"

type GoogleFileStore struct {
	host          string
	storageClient *storage.Client
}

func NewGoogleFileStore(host string, options ...option.ClientOption) (GoogleFileStore, error) {
	googleStorageClient, err := storage.NewClient(context.Background(), options...)
	if err != nil {
		return GoogleFileStore{}, cerr.Wrap(err).Error("Failed to create Google Cloud Storage client")
	}

	return GoogleFileStore{
		host:          strings.TrimSuffix(host, "/"),
		storageClient: googleStorageClient,
	}, nil
}

func (g GoogleFileStore) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	errctx := cerr.Field("file_url", fileURL)

	bucket, filePath, err := BucketAndPathFromURL(g.host, fileURL)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Couldn't extract file path from URL")
	}

	reader, err := g.objectHandle(bucket, filePath).NewReader(ctx)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create reader for Google object handle")
	}

	defer reader.Close()

	contents, err := io.ReadAll(reader)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to read remote file")
	}

	return contents, nil
}

func (g GoogleFileStore) WriteFile(ctx context.Context, fileURL string, fileContent []byte) (err error) {
	errctx := cerr.Field("file_url", fileURL)

	bucket, filePath, err := BucketAndPathFromURL(g.host, fileURL)
	if err != nil {
		return errctx.Wrap(err).Error("Couldn't extract file path from URL")
	}

	writer := g.objectHandle(bucket, filePath).NewWriter(ctx)
	defer func() {
		closeErr := writer.Close()
		if err == nil && closeErr != nil {
			err = errctx.Wrap(closeErr).Error("Error occurred when closing the upload stream")
		}
	}()

	if _, err = writer.Write(fileContent); err != nil {
		return errctx.Wrap(err).Error("Error occurred when uploading file")
	}

	return nil
}

// BucketAndPathFromURL splits <host>/<bucket>/<path> into its bucket and object path.
func BucketAndPathFromURL(host string, fileURL string) (string, string, error) {
	prefix := strings.TrimSuffix(host, "/") + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", "", cerr.Field("host", host).Error("File URL is not on the storage host")
	}

	chunks := strings.SplitN(strings.TrimPrefix(fileURL, prefix), "/", 2)
	if len(chunks) != 2 || chunks[0] == "" || chunks[1] == "" {
		return "", "", cerr.Error("File URL is missing a bucket or object path")
	}

	return chunks[0], chunks[1], nil
}

func (g GoogleFileStore) objectHandle(bucket string, filePath string) *storage.ObjectHandle {
	return g.storageClient.Bucket(bucket).Object(filePath)
}

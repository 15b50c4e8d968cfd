package entity

import "context"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// FileStore holds the downloaded sources and the separated stems of a request.
// Files are addressed by the URLs storagepath.Generator produces.
//
//counterfeiter:generate . FileStore
type FileStore interface {
	GetFile(ctx context.Context, fileURL string) ([]byte, error)
	WriteFile(ctx context.Context, fileURL string, contents []byte) error
}

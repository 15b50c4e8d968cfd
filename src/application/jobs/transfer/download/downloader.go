package download

import "context"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Downloader
type Downloader interface {
	Download(ctx context.Context, sourceURL string, outFilePath string) error
}

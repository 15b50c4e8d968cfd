package splitter

import (
	"context"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/application/separation/separator"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// StemFilePaths maps a stem name to the location of its file.
type StemFilePaths = map[string]string

type ProgressFn = func(progress separator.Progress) error

//counterfeiter:generate . FileSplitter
type FileSplitter interface {
	SplitFile(ctx context.Context, sourcePath string, stemOutputDir string, splitType entity.SplitType, onProgress ProgressFn) (StemFilePaths, error)
}

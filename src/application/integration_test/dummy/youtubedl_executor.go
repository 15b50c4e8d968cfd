package dummy

import (
	"context"
	"os"
	"stem-separator-workers/src/application/executor"
)

var _ executor.Executor = YoutubeDLExecutor{}

func NewDummyYoutubeDLExecutor() *YoutubeDLExecutor {
	return &YoutubeDLExecutor{
		Unavailable: false,
		URLContent:  make(URLContent),
	}
}

type URLContent map[string][]byte

type YoutubeDLExecutor struct {
	Unavailable bool
	URLContent  URLContent
}

type YoutubeDLCommand struct {
	Unavailable bool
	Args        []string
	URLContent  URLContent
}

func (y *YoutubeDLExecutor) AddURL(url string, content []byte) {
	y.URLContent[url] = append([]byte{}, content...)
}

func (y YoutubeDLExecutor) CommandContext(_ context.Context, _ string, arg ...string) executor.Command {
	return &YoutubeDLCommand{
		Unavailable: y.Unavailable,
		Args:        arg,
		URLContent:  y.URLContent,
	}
}

func (y *YoutubeDLCommand) SetDir(_ string) {}

func (y *YoutubeDLCommand) CombinedOutput() ([]byte, error) {
	if len(y.Args) < 2 || y.Args[0] != "-o" {
		return nil, ErrUnexpectedInput
	}

	if y.Unavailable {
		return nil, ErrNetworkFailure
	}

	outputPath := y.Args[1]
	sourceURL := y.Args[len(y.Args)-1]

	fileContents, ok := y.URLContent[sourceURL]
	if !ok {
		return nil, ErrNotFound
	}

	if err := os.WriteFile(outputPath, fileContents, os.ModePerm); err != nil {
		return nil, err
	}

	return []byte("Success"), nil
}

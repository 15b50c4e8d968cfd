package dummy

import (
	"context"
	"os"
	"stem-separator-workers/src/application/executor"
)

var _ executor.Executor = &FFmpegExecutor{}

func NewDummyFFmpegExecutor() *FFmpegExecutor {
	return &FFmpegExecutor{
		Unavailable: false,
	}
}

// FFmpegExecutor pretends every input is already in the requested format and copies it to the output path.
type FFmpegExecutor struct {
	Unavailable bool
}

type FFmpegCommand struct {
	Unavailable bool
	Args        []string
	Dir         string
}

func (f *FFmpegExecutor) CommandContext(_ context.Context, _ string, arg ...string) executor.Command {
	return &FFmpegCommand{
		Unavailable: f.Unavailable,
		Args:        arg,
	}
}

func (f *FFmpegCommand) SetDir(dir string) {
	f.Dir = dir
}

func (f *FFmpegCommand) CombinedOutput() ([]byte, error) {
	inputPath, err := getOptionValue(f.Args, "-i")
	if err != nil {
		return nil, err
	}

	if f.Unavailable {
		return nil, ErrNetworkFailure
	}

	outputPath := f.Args[len(f.Args)-1]

	contents, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outputPath, contents, os.ModePerm); err != nil {
		return nil, err
	}

	return []byte("Success"), nil
}

func getOptionValue(args []string, key string) (string, error) {
	for i, arg := range args {
		if arg == key && i+1 < len(args) {
			return args[i+1], nil
		}
	}

	return "", ErrUnexpectedInput
}

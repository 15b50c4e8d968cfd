package executor

import (
	"context"
	"os/exec"
)

var _ Executor = BinaryFileExecutor{}

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Executor
type Executor interface {
	CommandContext(ctx context.Context, name string, arg ...string) Command
}

//counterfeiter:generate . Command
type Command interface {
	SetDir(dir string)
	CombinedOutput() ([]byte, error)
}

// BinaryFileExecutor runs real binaries. It exists so tests can swap in a fake executor.
type BinaryFileExecutor struct{}

func (b BinaryFileExecutor) CommandContext(ctx context.Context, name string, arg ...string) Command {
	return &binaryCommand{Cmd: exec.CommandContext(ctx, name, arg...)}
}

type binaryCommand struct {
	*exec.Cmd
}

func (b *binaryCommand) SetDir(dir string) {
	b.Cmd.Dir = dir
}

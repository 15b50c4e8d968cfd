package transcode_test

import (
	"context"
	"stem-separator-workers/src/application/audio/transcode"
	"stem-separator-workers/src/application/executor"

	"github.com/cockroachdb/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type recordedCommand struct {
	name string
	args []string
	dir  string
	err  error
}

func (r *recordedCommand) SetDir(dir string) {
	r.dir = dir
}

func (r *recordedCommand) CombinedOutput() ([]byte, error) {
	if r.err != nil {
		return []byte("Invalid data found when processing input"), r.err
	}
	return nil, nil
}

type recordingExecutor struct {
	commands []*recordedCommand
	err      error
}

func (r *recordingExecutor) CommandContext(_ context.Context, name string, arg ...string) executor.Command {
	cmd := &recordedCommand{name: name, args: arg, err: r.err}
	r.commands = append(r.commands, cmd)
	return cmd
}

var _ = Describe("FFmpeg", func() {
	var (
		exec   *recordingExecutor
		ffmpeg transcode.FFmpeg
	)

	BeforeEach(func() {
		exec = &recordingExecutor{}
		ffmpeg = transcode.NewFFmpeg("/usr/bin/ffmpeg", "/tmp/work", exec)
	})

	It("decodes to stereo 16-bit PCM at the working sample rate", func() {
		Expect(ffmpeg.ToWAV(context.Background(), "source.mp3", "source.wav")).To(Succeed())

		Expect(exec.commands).To(HaveLen(1))
		cmd := exec.commands[0]
		Expect(cmd.name).To(Equal("/usr/bin/ffmpeg"))
		Expect(cmd.dir).To(Equal("/tmp/work"))
		Expect(cmd.args).To(Equal([]string{
			"-y", "-i", "source.mp3",
			"-vn",
			"-acodec", "pcm_s16le",
			"-ar", "44100",
			"-ac", "2",
			"source.wav",
		}))
	})

	It("encodes stems to mp3", func() {
		Expect(ffmpeg.ToMP3(context.Background(), "vocals.wav", "vocals.mp3")).To(Succeed())

		cmd := exec.commands[0]
		Expect(cmd.args).To(Equal([]string{
			"-y", "-i", "vocals.wav",
			"-codec:a", "libmp3lame",
			"-b:a", "320k",
			"vocals.mp3",
		}))
	})

	It("leaves the directory alone when none is configured", func() {
		ffmpeg = transcode.NewFFmpeg("ffmpeg", "", exec)
		Expect(ffmpeg.ToMP3(context.Background(), "a.wav", "a.mp3")).To(Succeed())
		Expect(exec.commands[0].dir).To(BeEmpty())
	})

	It("returns the failure with ffmpeg's output attached", func() {
		exitErr := errors.New("exit status 1")
		exec.err = exitErr

		err := ffmpeg.ToWAV(context.Background(), "broken.mp3", "broken.wav")
		Expect(errors.Is(err, exitErr)).To(BeTrue())
	})
})

// Package transcode converts between compressed audio and the PCM WAV files the separator works on.
package transcode

import (
	"context"
	"stem-separator-workers/src/application/executor"
	"stem-separator-workers/src/lib/cerr"
	"strconv"

	"github.com/apex/log"
)

const (
	SampleRate   = 44100
	mp3Bitrate   = "320k"
	stereoLayout = 2
)

type FFmpeg struct {
	binPath    string
	workingDir string
	executor   executor.Executor
}

func NewFFmpeg(binPath string, workingDir string, executor executor.Executor) FFmpeg {
	return FFmpeg{
		binPath:    binPath,
		workingDir: workingDir,
		executor:   executor,
	}
}

// ToWAV decodes any input ffmpeg understands into 16-bit stereo PCM at SampleRate.
func (f FFmpeg) ToWAV(ctx context.Context, inputPath string, outputPath string) error {
	return f.run(ctx, "-y", "-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(SampleRate),
		"-ac", strconv.Itoa(stereoLayout),
		outputPath)
}

func (f FFmpeg) ToMP3(ctx context.Context, inputPath string, outputPath string) error {
	return f.run(ctx, "-y", "-i", inputPath,
		"-codec:a", "libmp3lame",
		"-b:a", mp3Bitrate,
		outputPath)
}

func (f FFmpeg) run(ctx context.Context, args ...string) error {
	logger := log.WithFields(log.Fields{
		"bin_path": f.binPath,
		"args":     args,
	})

	logger.Debug("Running ffmpeg")
	cmd := f.executor.CommandContext(ctx, f.binPath, args...)
	if f.workingDir != "" {
		cmd.SetDir(f.workingDir)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return cerr.Field("args", args).
			Field("output", string(output)).
			Wrap(err).Error("Failed to run ffmpeg")
	}

	logger.Debug("Finished ffmpeg")
	return nil
}

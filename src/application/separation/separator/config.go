package separator

import (
	"stem-separator-workers/src/application/separation/stft"
	"stem-separator-workers/src/lib/cerr"
)

// Config must match the configuration the model was trained with;
// a mismatch is not detectable here and only degrades the output.
type Config struct {
	FFTSize            int
	HopLength          int
	FrequencyLimit     int
	ClampingFrameCount int
}

func DefaultConfig() Config {
	return Config{
		FFTSize:            4096,
		HopLength:          1024,
		FrequencyLimit:     1024,
		ClampingFrameCount: 216,
	}
}

// ChunkSize is the largest number of samples one model call can consume.
func (c Config) ChunkSize() int {
	return c.HopLength * (c.ClampingFrameCount - 1)
}

// ChunkCount is the number of chunks an input of the given length is partitioned into.
func (c Config) ChunkCount(length int) int {
	chunkSize := c.ChunkSize()
	return (length + chunkSize - 1) / chunkSize
}

func (c Config) newEngine() (stft.Engine, error) {
	if c.ClampingFrameCount < 2 {
		return stft.Engine{}, cerr.Field("clamping_frame_count", c.ClampingFrameCount).
			Wrap(stft.ErrInvalidConfig).Error("Clamping frame count must be at least 2")
	}

	engine, err := stft.New(c.FFTSize, c.HopLength, c.FrequencyLimit)
	if err != nil {
		return stft.Engine{}, cerr.Wrap(err).Error("Failed to create STFT engine")
	}

	return engine, nil
}

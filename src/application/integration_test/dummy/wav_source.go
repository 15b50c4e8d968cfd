package dummy

import (
	"math"
	"os"
	"path/filepath"
	"stem-separator-workers/src/application/audio/wav"
)

// SineWAV encodes a mono 16-bit WAV holding length samples of a 440Hz tone,
// using dir for scratch space.
func SineWAV(dir string, length int, sampleRate int) ([]byte, error) {
	samples := make([]float32, length)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
	}

	scratch, err := os.MkdirTemp(dir, "fixture")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(scratch)

	path := filepath.Join(scratch, "sine.wav")
	writer, err := wav.Create(path, sampleRate)
	if err != nil {
		return nil, err
	}

	if err := writer.Append(samples); err != nil {
		_ = writer.Close()
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}

// Package modelconfig loads the optional separation settings file. The format
// is picked from the file extension: .toml, or .yaml/.yml.
package modelconfig

import (
	"os"
	"path/filepath"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/lib/cerr"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported separation config format")

type STFT struct {
	FFTSize            int `toml:"fft_size" yaml:"fft_size"`
	HopLength          int `toml:"hop_length" yaml:"hop_length"`
	FrequencyLimit     int `toml:"frequency_limit" yaml:"frequency_limit"`
	ClampingFrameCount int `toml:"clamping_frame_count" yaml:"clamping_frame_count"`
}

type Settings struct {
	STFT STFT `toml:"stft" yaml:"stft"`
	// Models maps a split type ("2stems", ...) to the served model name.
	Models map[string]string `toml:"models" yaml:"models"`
}

// Load reads the settings at path. An empty path yields empty settings.
func Load(path string) (Settings, error) {
	if path == "" {
		return Settings{}, nil
	}

	errctx := cerr.Field("config_path", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errctx.Wrap(err).Error("Failed to read separation config")
	}

	return Parse(content, filepath.Ext(path))
}

func Parse(content []byte, ext string) (Settings, error) {
	errctx := cerr.Field("format", ext)
	settings := Settings{}

	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(content), &settings); err != nil {
			return Settings{}, errctx.Wrap(err).Error("Failed to parse TOML separation config")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &settings); err != nil {
			return Settings{}, errctx.Wrap(err).Error("Failed to parse YAML separation config")
		}
	default:
		return Settings{}, errctx.Wrap(ErrUnsupportedFormat).Error("Separation config must be TOML or YAML")
	}

	return settings, nil
}

// Apply overrides the non-zero STFT settings on top of base.
func (s Settings) Apply(base separator.Config) separator.Config {
	config := base
	if s.STFT.FFTSize != 0 {
		config.FFTSize = s.STFT.FFTSize
	}
	if s.STFT.HopLength != 0 {
		config.HopLength = s.STFT.HopLength
	}
	if s.STFT.FrequencyLimit != 0 {
		config.FrequencyLimit = s.STFT.FrequencyLimit
	}
	if s.STFT.ClampingFrameCount != 0 {
		config.ClampingFrameCount = s.STFT.ClampingFrameCount
	}

	return config
}

// ModelName is the served model for a split type, defaulting to the split type itself.
func (s Settings) ModelName(splitType string) string {
	if name, ok := s.Models[splitType]; ok && name != "" {
		return name
	}

	return splitType
}

package modelconfig_test

import (
	"os"
	"path/filepath"
	"stem-separator-workers/src/application/separation/modelconfig"
	"stem-separator-workers/src/application/separation/separator"

	"github.com/cockroachdb/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const tomlConfig = `
[stft]
fft_size = 2048
hop_length = 512

[models]
4stems = "spleeter-4stems-16khz"
`

const yamlConfig = `
stft:
  frequency_limit: 512
  clamping_frame_count: 64
models:
  2stems: spleeter-2stems
`

var _ = Describe("ModelConfig", func() {
	Describe("Parse", func() {
		It("reads TOML", func() {
			settings, err := modelconfig.Parse([]byte(tomlConfig), ".toml")
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.STFT.FFTSize).To(Equal(2048))
			Expect(settings.STFT.HopLength).To(Equal(512))
			Expect(settings.ModelName("4stems")).To(Equal("spleeter-4stems-16khz"))
		})

		It("reads YAML", func() {
			settings, err := modelconfig.Parse([]byte(yamlConfig), ".YML")
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.STFT.FrequencyLimit).To(Equal(512))
			Expect(settings.STFT.ClampingFrameCount).To(Equal(64))
			Expect(settings.ModelName("2stems")).To(Equal("spleeter-2stems"))
		})

		It("rejects other formats", func() {
			_, err := modelconfig.Parse([]byte(`{}`), ".json")
			Expect(errors.Is(err, modelconfig.ErrUnsupportedFormat)).To(BeTrue())
		})

		It("rejects malformed content", func() {
			_, err := modelconfig.Parse([]byte("[stft\nfft_size ="), ".toml")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Apply", func() {
		It("overrides only the settings that are present", func() {
			settings, err := modelconfig.Parse([]byte(tomlConfig), ".toml")
			Expect(err).NotTo(HaveOccurred())

			config := settings.Apply(separator.DefaultConfig())
			Expect(config).To(Equal(separator.Config{
				FFTSize:            2048,
				HopLength:          512,
				FrequencyLimit:     1024,
				ClampingFrameCount: 216,
			}))
		})
	})

	Describe("ModelName", func() {
		It("falls back to the split type", func() {
			Expect(modelconfig.Settings{}.ModelName("5stems")).To(Equal("5stems"))
		})
	})

	Describe("Load", func() {
		It("yields empty settings without a path", func() {
			settings, err := modelconfig.Load("")
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.Apply(separator.DefaultConfig())).To(Equal(separator.DefaultConfig()))
		})

		It("picks the format from the file extension", func() {
			dir, err := os.MkdirTemp("", "modelconfig")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(dir)

			path := filepath.Join(dir, "separation.yaml")
			Expect(os.WriteFile(path, []byte(yamlConfig), 0o644)).To(Succeed())

			settings, err := modelconfig.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.STFT.ClampingFrameCount).To(Equal(64))
		})

		It("fails on a missing file", func() {
			_, err := modelconfig.Load("/does/not/exist.toml")
			Expect(err).To(HaveOccurred())
		})
	})
})

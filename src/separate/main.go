package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"stem-separator-workers/src/application/audio/wav"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/application/separation/model"
	"stem-separator-workers/src/application/separation/modelconfig"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/lib/cerr"
	"stem-separator-workers/src/lib/envvar"

	"github.com/apex/log"
	"github.com/spf13/cobra"
)

type options struct {
	input      string
	outputDir  string
	splitType  string
	modelURL   string
	configPath string
	bandSplit  bool
}

func main() {
	opts := options{}

	rootCmd := &cobra.Command{
		Use:   "separate",
		Short: "Separates a local 16-bit PCM WAV file into one WAV per stem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "input WAV file")
	flags.StringVarP(&opts.outputDir, "output", "o", ".", "directory for the stem files")
	flags.StringVar(&opts.splitType, "split-type", string(entity.TwoStemsSplit), "one of 2stems, 4stems, 5stems")
	flags.StringVar(&opts.modelURL, "model-url", envvar.GetOrDefault(envvar.MODEL_SERVING_URL, "http://localhost:8501"), "model serving base URL")
	flags.StringVar(&opts.configPath, "config", envvar.GetOrDefault(envvar.SEPARATION_CONFIG_PATH, ""), "TOML or YAML separation config")
	flags.BoolVar(&opts.bandSplit, "band-split", false, "split by frequency bands instead of calling a model")
	_ = rootCmd.MarkFlagRequired("input")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		cerr.Log(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	settings, err := modelconfig.Load(opts.configPath)
	if err != nil {
		return err
	}

	splitType, err := entity.ConvertToSplitType(opts.splitType)
	if err != nil {
		return err
	}

	source, err := wav.Open(opts.input)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := os.MkdirAll(opts.outputDir, os.ModePerm); err != nil {
		return cerr.Field("output_dir", opts.outputDir).Wrap(err).Error("Failed to create output directory")
	}

	config := settings.Apply(separator.DefaultConfig())

	switch splitType {
	case entity.TwoStemsSplit:
		return separateFile[stem.TwoStems](ctx, opts, config, settings, source)
	case entity.FourStemsSplit:
		return separateFile[stem.FourStems](ctx, opts, config, settings, source)
	default:
		return separateFile[stem.FiveStems](ctx, opts, config, settings, source)
	}
}

func separateFile[L stem.Layout](ctx context.Context, opts options, config separator.Config, settings modelconfig.Settings, source wav.Reader) error {
	var stemModel separator.Model[L] = model.RatioMask[L]{}
	if !opts.bandSplit {
		servingModel, err := model.NewServingModel[L](http.DefaultClient, opts.modelURL, settings.ModelName(stem.SplitTypeOf[L]()))
		if err != nil {
			return err
		}
		stemModel = servingModel
	}

	stemSeparator, err := separator.NewSeparator[L](config, stemModel)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writers := map[stem.Name]*wav.Writer{}
	opened := []*wav.Writer{}
	defer func() {
		_ = wav.CloseAll(opened...)
	}()

	for _, name := range stem.NamesOf[L]() {
		writer, err := wav.Create(filepath.Join(opts.outputDir, string(name)+".wav"), int(source.SampleRate()))
		if err != nil {
			return err
		}
		writers[name] = writer
		opened = append(opened, writer)
	}

	for event := range stemSeparator.Stream(ctx, source) {
		if event.Err != nil {
			return event.Err
		}

		if event.Stems != nil {
			for name, samples := range event.Stems.ToMap() {
				if err := writers[stem.Name(name)].Append(samples); err != nil {
					return err
				}
			}
		}

		log.WithField("percent", fmt.Sprintf("%.1f", event.Progress.Percent())).Info("Separating")
	}

	if err := ctx.Err(); err != nil {
		return cerr.Wrap(err).Error("Separation was cancelled")
	}

	finished := opened
	opened = nil
	if err := wav.CloseAll(finished...); err != nil {
		return cerr.Field("output_dir", opts.outputDir).Wrap(err).Error("Failed to finish stem files")
	}

	return nil
}

package file_splitter

import (
	"context"
	"os"
	"path/filepath"
	"stem-separator-workers/src/application/audio/transcode"
	"stem-separator-workers/src/application/audio/wav"
	"stem-separator-workers/src/application/jobs/separate/splitter"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/lib/cerr"
	"stem-separator-workers/src/lib/working_dir"

	"github.com/apex/log"
)

var _ splitter.FileSplitter = LocalFileSplitter{}

// Models holds the mask model serving each split type. A nil model disables that split type.
type Models struct {
	TwoStems  separator.Model[stem.TwoStems]
	FourStems separator.Model[stem.FourStems]
	FiveStems separator.Model[stem.FiveStems]
}

type Transcoder interface {
	ToWAV(ctx context.Context, inputPath string, outputPath string) error
	ToMP3(ctx context.Context, inputPath string, outputPath string) error
}

var _ Transcoder = transcode.FFmpeg{}

func NewLocalFileSplitter(workingDirStr string, transcoder Transcoder, config separator.Config, models Models) (LocalFileSplitter, error) {
	workingDir, err := working_dir.NewWorkingDir(workingDirStr)
	if err != nil {
		return LocalFileSplitter{}, cerr.Wrap(err).Error("Failed to create working directory object")
	}

	return LocalFileSplitter{
		workingDir: workingDir,
		transcoder: transcoder,
		config:     config,
		models:     models,
	}, nil
}

// LocalFileSplitter separates a local audio file into one mp3 per stem.
type LocalFileSplitter struct {
	workingDir working_dir.WorkingDir
	transcoder Transcoder
	config     separator.Config
	models     Models
}

func (l LocalFileSplitter) SplitFile(ctx context.Context, sourcePath string, stemOutputDir string, splitType entity.SplitType, onProgress splitter.ProgressFn) (splitter.StemFilePaths, error) {
	errctx := cerr.Fields(cerr.F{
		"source_path":     sourcePath,
		"stem_output_dir": stemOutputDir,
		"split_type":      splitType,
	})

	logger := log.WithFields(log.Fields{
		"source_path":     sourcePath,
		"stem_output_dir": stemOutputDir,
		"split_type":      splitType,
	})

	if err := os.MkdirAll(stemOutputDir, os.ModePerm); err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create stem output directory")
	}

	tempDir, removeTempDir, err := l.workingDir.MakeTempDir("separate")
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create temp dir for decoded audio")
	}
	defer removeTempDir()

	logger.Info("Decoding source to WAV")
	decodedPath := filepath.Join(tempDir, "source.wav")
	if err := l.transcoder.ToWAV(ctx, sourcePath, decodedPath); err != nil {
		return nil, errctx.Wrap(err).Error("Failed to decode source")
	}

	source, err := wav.Open(decodedPath)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to open decoded source")
	}
	defer source.Close()

	logger.WithField("samples", source.Length()).Info("Running separation")
	wavPaths, err := l.separate(ctx, source, tempDir, splitType, onProgress)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to separate source")
	}

	logger.Info("Encoding stems to mp3")
	stemPaths := splitter.StemFilePaths{}
	for stemName, wavPath := range wavPaths {
		mp3Path := filepath.Join(stemOutputDir, stemName+".mp3")
		if err := l.transcoder.ToMP3(ctx, wavPath, mp3Path); err != nil {
			return nil, errctx.Field("stem", stemName).Wrap(err).Error("Failed to encode stem")
		}
		stemPaths[stemName] = mp3Path
	}

	logger.Info("Finished separating file")
	return stemPaths, nil
}

func (l LocalFileSplitter) separate(ctx context.Context, source wav.Reader, outputDir string, splitType entity.SplitType, onProgress splitter.ProgressFn) (map[string]string, error) {
	switch splitType {
	case entity.TwoStemsSplit:
		return separateToFiles(ctx, l.config, l.models.TwoStems, source, outputDir, onProgress)
	case entity.FourStemsSplit:
		return separateToFiles(ctx, l.config, l.models.FourStems, source, outputDir, onProgress)
	case entity.FiveStemsSplit:
		return separateToFiles(ctx, l.config, l.models.FiveStems, source, outputDir, onProgress)
	default:
		return nil, cerr.Field("split_type", splitType).Error("Invalid split type passed in")
	}
}

func separateToFiles[L stem.Layout](ctx context.Context, config separator.Config, model separator.Model[L], source separator.Source, outputDir string, onProgress splitter.ProgressFn) (map[string]string, error) {
	errctx := cerr.Field("split_type", stem.SplitTypeOf[L]())

	if model == nil {
		return nil, errctx.Error("No model is configured for this split type")
	}

	stemSeparator, err := separator.NewSeparator[L](config, model)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to create separator")
	}

	paths := stem.FromFunc[L](func(name stem.Name) string {
		return filepath.Join(outputDir, string(name)+".wav")
	})

	opened := []*wav.Writer{}
	closeAll := func() error {
		err := wav.CloseAll(opened...)
		opened = nil
		return err
	}

	sinks, err := stem.Map(paths, func(_ stem.Name, path string) (separator.Sink, error) {
		writer, err := wav.Create(path, int(source.SampleRate()))
		if err != nil {
			return nil, err
		}

		opened = append(opened, writer)
		return writer, nil
	})
	if err != nil {
		_ = closeAll()
		return nil, errctx.Wrap(err).Error("Failed to create stem files")
	}

	if err := stemSeparator.SeparateToSinks(ctx, source, sinks, onProgress); err != nil {
		_ = closeAll()
		return nil, errctx.Wrap(err).Error("Separation failed")
	}

	if err := closeAll(); err != nil {
		return nil, errctx.Wrap(err).Error("Failed to finalize stem files")
	}

	return paths.ToMap(), nil
}

package separator

import (
	"context"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/lib/cerr"

	"github.com/apex/log"
)

// Event is one step of a stream. The first event of a stream carries no stems.
// An event with a non-nil Err is always the last one.
type Event[L stem.Layout] struct {
	Stems    *stem.Stems[L, []float32]
	Progress Progress
	Err      error
}

type emitFn[L stem.Layout] func(stems *stem.Stems[L, []float32], progress Progress) error

func (s Separator[L]) run(ctx context.Context, source Source, emit emitFn[L]) error {
	length := s.config.ChunkSize()
	total := s.config.ChunkCount(source.Length())

	logger := log.WithFields(log.Fields{
		"split_type":  stem.SplitTypeOf[L](),
		"length":      source.Length(),
		"chunk_size":  length,
		"chunk_count": total,
	})

	logger.Debug("Chunking source")
	if err := emit(nil, Progress{Total: total, Current: 0}); err != nil {
		logger.WithError(err).Debug("Separation failed")
		return err
	}

	for i := 0; i < total; i++ {
		errctx := cerr.Field("chunk_index", i).Field("chunk_count", total)
		chunkLogger := logger.WithField("chunk_index", i)

		if err := ctx.Err(); err != nil {
			chunkLogger.WithError(err).Debug("Separation cancelled")
			return errctx.Wrap(err).Error("Separation was cancelled")
		}

		start := i * length
		end := start + length
		if end > source.Length() {
			end = source.Length()
		}

		chunkLogger.Debug("Processing chunk")
		left, right, err := source.ReadStereo(ctx, start, end)
		if err != nil {
			chunkLogger.WithError(err).Debug("Separation failed")
			return errctx.Wrap(err).Error("Failed to read chunk from source")
		}

		stems, err := s.SeparateChunk(ctx, left, right)
		if err != nil {
			chunkLogger.WithError(err).Debug("Separation failed")
			return errctx.Wrap(err).Error("Failed to separate chunk")
		}

		if err := emit(&stems, Progress{Total: total, Current: i + 1}); err != nil {
			chunkLogger.WithError(err).Debug("Separation failed")
			return err
		}
		chunkLogger.Debug("Emitted progress")
	}

	logger.Debug("Separation completed")
	return nil
}

// SeparateToSinks writes every stem of every chunk to its sink, in chunk order.
// onProgress runs once before the first chunk and once after each chunk's samples
// are appended; a non-nil return stops the separation.
func (s Separator[L]) SeparateToSinks(ctx context.Context, source Source, sinks stem.Stems[L, Sink], onProgress func(Progress) error) error {
	return s.run(ctx, source, func(stems *stem.Stems[L, []float32], progress Progress) error {
		if stems != nil {
			pairs, err := zip(*stems, sinks)
			if err != nil {
				return err
			}

			_, err = stem.Map(pairs, func(name stem.Name, p sinkWrite) (struct{}, error) {
				if err := p.sink.Append(p.samples); err != nil {
					return struct{}{}, cerr.Wrap(err).Error("Failed to append to stem sink")
				}
				return struct{}{}, nil
			})
			if err != nil {
				return err
			}
		}

		if onProgress == nil {
			return nil
		}

		if err := onProgress(progress); err != nil {
			return cerr.Field("progress", progress.Current).
				Wrap(err).Error("Progress callback failed")
		}

		return nil
	})
}

// SeparateWaveform separates a whole in-memory source into one waveform per stem.
func (s Separator[L]) SeparateWaveform(ctx context.Context, source Source) (stem.Stems[L, []float32], error) {
	buffers := stem.FromFunc[L](func(stem.Name) *MemorySink { return &MemorySink{} })
	sinks, err := stem.Map(buffers, func(_ stem.Name, m *MemorySink) (Sink, error) { return m, nil })
	if err != nil {
		return stem.Stems[L, []float32]{}, err
	}

	if err := s.SeparateToSinks(ctx, source, sinks, nil); err != nil {
		return stem.Stems[L, []float32]{}, err
	}

	return stem.Map(buffers, func(_ stem.Name, m *MemorySink) ([]float32, error) {
		if m.Samples == nil {
			return []float32{}, nil
		}
		return m.Samples, nil
	})
}

// Stream runs the separation in the background. The channel is unbuffered and
// the separation only advances as events are received. Cancelling ctx stops the
// separation and closes the channel even if nobody is receiving any more, in
// which case the final error event is dropped.
func (s Separator[L]) Stream(ctx context.Context, source Source) <-chan Event[L] {
	events := make(chan Event[L])

	go func() {
		defer close(events)

		err := s.run(ctx, source, func(stems *stem.Stems[L, []float32], progress Progress) error {
			select {
			case events <- Event[L]{Stems: stems, Progress: progress}:
				return nil
			case <-ctx.Done():
				return cerr.Field("progress", progress.Current).
					Wrap(ctx.Err()).Error("Stream was cancelled before the event was received")
			}
		})

		if err != nil {
			select {
			case events <- Event[L]{Err: err}:
			case <-ctx.Done():
			}
		}
	}()

	return events
}

type sinkWrite struct {
	samples []float32
	sink    Sink
}

func zip[L stem.Layout](stems stem.Stems[L, []float32], sinks stem.Stems[L, Sink]) (stem.Stems[L, sinkWrite], error) {
	samples := stems.Values()
	targets := sinks.Values()
	if len(samples) != len(targets) {
		return stem.Stems[L, sinkWrite]{}, cerr.Field("stems", len(samples)).
			Field("sinks", len(targets)).
			Error("Sinks do not match the stem layout")
	}

	pairs := make([]sinkWrite, len(samples))
	for i := range samples {
		pairs[i] = sinkWrite{samples: samples[i], sink: targets[i]}
	}

	return stem.New[L](pairs...)
}

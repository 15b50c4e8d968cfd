package separator

import (
	"context"
	"stem-separator-workers/src/application/separation/spectrogram"
	"stem-separator-workers/src/application/separation/stem"
)

// Model computes one mask per stem for a (channel, frequency, time) magnitude tensor.
// Every mask must have the same shape as the magnitude. Calls are never made concurrently.
type Model[L stem.Layout] interface {
	Predict(ctx context.Context, magnitude spectrogram.Tensor) (stem.Stems[L, spectrogram.Tensor], error)
}

package model

import (
	"context"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/application/separation/spectrogram"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/lib/cerr"
)

var _ separator.Model[stem.FourStems] = RatioMask[stem.FourStems]{}

// RatioMask assigns each frequency bin wholly to one stem by splitting the
// spectrum into equal bands, lowest band to the first stem. The masks of all
// stems sum to one at every bin.
type RatioMask[L stem.Layout] struct{}

func (RatioMask[L]) Predict(ctx context.Context, magnitude spectrogram.Tensor) (stem.Stems[L, spectrogram.Tensor], error) {
	if err := ctx.Err(); err != nil {
		return stem.Stems[L, spectrogram.Tensor]{}, cerr.Wrap(err).Error("Prediction cancelled")
	}

	if err := magnitude.CheckShape("magnitude", rank3(magnitude.Shape)...); err != nil {
		return stem.Stems[L, spectrogram.Tensor]{}, err
	}

	channels, bins, frames := magnitude.Shape[0], magnitude.Shape[1], magnitude.Shape[2]
	count := stem.CountOf[L]()
	names := stem.NamesOf[L]()

	return stem.FromFunc[L](func(name stem.Name) spectrogram.Tensor {
		band := 0
		for i, n := range names {
			if n == name {
				band = i
			}
		}

		mask := spectrogram.NewTensor(channels, bins, frames)
		for c := 0; c < channels; c++ {
			for f := 0; f < bins; f++ {
				if f*count/bins != band {
					continue
				}
				for t := 0; t < frames; t++ {
					mask.Data[(c*bins+f)*frames+t] = 1
				}
			}
		}

		return mask
	}), nil
}

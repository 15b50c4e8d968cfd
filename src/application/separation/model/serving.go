// Package model adapts mask-predicting models to separator.Model.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/application/separation/spectrogram"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/lib/cerr"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrPredictionFailed marks failures reported by the serving endpoint itself.
var ErrPredictionFailed = errors.New("model server failed to predict")

const magnitudeInput = "magnitude"

var _ separator.Model[stem.TwoStems] = ServingModel[stem.TwoStems]{}

// ServingModel calls a TensorFlow Serving style REST endpoint:
// POST {baseURL}/v1/models/{name}:predict
type ServingModel[L stem.Layout] struct {
	client   *http.Client
	endpoint string
	name     string
}

func NewServingModel[L stem.Layout](client *http.Client, baseURL string, name string) (ServingModel[L], error) {
	errctx := cerr.Field("base_url", baseURL).Field("model_name", name)

	if name == "" {
		return ServingModel[L]{}, errctx.Error("Model name must not be empty")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return ServingModel[L]{}, errctx.Wrap(err).Error("Failed to parse model serving URL")
	}

	if base.Scheme == "" || base.Host == "" {
		return ServingModel[L]{}, errctx.Error("Model serving URL must be absolute")
	}

	if client == nil {
		client = http.DefaultClient
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s:predict", strings.TrimSuffix(base.String(), "/"), url.PathEscape(name))

	return ServingModel[L]{
		client:   client,
		endpoint: endpoint,
		name:     name,
	}, nil
}

type predictRequest struct {
	Inputs map[string][][][]float32 `json:"inputs"`
}

type predictResponse struct {
	Outputs map[string][][][]float32 `json:"outputs"`
	Error   string                   `json:"error,omitempty"`
}

func (s ServingModel[L]) Predict(ctx context.Context, magnitude spectrogram.Tensor) (stem.Stems[L, spectrogram.Tensor], error) {
	errctx := cerr.Field("model_name", s.name).Field("endpoint", s.endpoint)

	nested, err := toNested(magnitude)
	if err != nil {
		return stem.Stems[L, spectrogram.Tensor]{}, errctx.Wrap(err).Error("Magnitude is not a rank 3 tensor")
	}

	body, err := json.Marshal(predictRequest{
		Inputs: map[string][][][]float32{magnitudeInput: nested},
	})
	if err != nil {
		return stem.Stems[L, spectrogram.Tensor]{}, errctx.Wrap(err).Error("Failed to encode prediction request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return stem.Stems[L, spectrogram.Tensor]{}, errctx.Wrap(err).Error("Failed to create prediction request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return stem.Stems[L, spectrogram.Tensor]{}, errctx.Wrap(err).Error("Failed to reach model server")
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return stem.Stems[L, spectrogram.Tensor]{}, errctx.Wrap(err).Error("Failed to read prediction response")
	}

	if res.StatusCode != http.StatusOK {
		return stem.Stems[L, spectrogram.Tensor]{}, errctx.Field("status_code", res.StatusCode).
			Field("response", truncate(string(resBody), 512)).
			Wrap(ErrPredictionFailed).Error("Model server returned an error status")
	}

	var prediction predictResponse
	if err := json.Unmarshal(resBody, &prediction); err != nil {
		return stem.Stems[L, spectrogram.Tensor]{}, errctx.Wrap(err).Error("Failed to decode prediction response")
	}

	if prediction.Error != "" {
		return stem.Stems[L, spectrogram.Tensor]{}, errctx.Field("response_error", prediction.Error).
			Wrap(ErrPredictionFailed).Error("Model server reported an error")
	}

	return s.toStems(prediction.Outputs, magnitude.Shape)
}

func (s ServingModel[L]) toStems(outputs map[string][][][]float32, shape []int) (stem.Stems[L, spectrogram.Tensor], error) {
	masks := map[stem.Name]spectrogram.Tensor{}
	for _, name := range stem.NamesOf[L]() {
		output, ok := outputs[string(name)]
		if !ok {
			return stem.Stems[L, spectrogram.Tensor]{}, &spectrogram.ShapeError{
				What:     fmt.Sprintf("%s mask (missing from response)", name),
				Expected: append([]int{}, shape...),
				Actual:   nil,
			}
		}

		mask, err := fromNested(output)
		if err != nil {
			return stem.Stems[L, spectrogram.Tensor]{}, cerr.Field("stem", name).Wrap(err).Error("Model returned a ragged mask")
		}

		if err := mask.CheckShape(fmt.Sprintf("%s mask", name), shape...); err != nil {
			return stem.Stems[L, spectrogram.Tensor]{}, err
		}

		masks[name] = mask
	}

	return stem.FromMap[L](masks)
}

func toNested(t spectrogram.Tensor) ([][][]float32, error) {
	if err := t.CheckShape("magnitude", rank3(t.Shape)...); err != nil {
		return nil, err
	}

	d0, d1, d2 := t.Shape[0], t.Shape[1], t.Shape[2]
	nested := make([][][]float32, d0)
	for i := range nested {
		nested[i] = make([][]float32, d1)
		for j := range nested[i] {
			offset := (i*d1 + j) * d2
			nested[i][j] = t.Data[offset : offset+d2]
		}
	}

	return nested, nil
}

func fromNested(nested [][][]float32) (spectrogram.Tensor, error) {
	d0 := len(nested)
	d1, d2 := 0, 0
	if d0 > 0 {
		d1 = len(nested[0])
		if d1 > 0 {
			d2 = len(nested[0][0])
		}
	}

	t := spectrogram.NewTensor(d0, d1, d2)
	for i, plane := range nested {
		if len(plane) != d1 {
			return spectrogram.Tensor{}, &spectrogram.ShapeError{What: "nested tensor", Expected: []int{d0, d1, d2}, Actual: []int{d0, len(plane), -1}}
		}
		for j, row := range plane {
			if len(row) != d2 {
				return spectrogram.Tensor{}, &spectrogram.ShapeError{What: "nested tensor", Expected: []int{d0, d1, d2}, Actual: []int{d0, d1, len(row)}}
			}
			copy(t.Data[(i*d1+j)*d2:], row)
		}
	}

	return t, nil
}

// rank3 returns the shape itself if it is rank 3, otherwise an impossible rank 3 shape
// so that CheckShape reports it.
func rank3(shape []int) []int {
	if len(shape) == 3 {
		return shape
	}
	return []int{-1, -1, -1}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Package stem provides a fixed-arity, order-preserving container holding one
// value per separated stem.
package stem

import (
	"context"
	"stem-separator-workers/src/lib/cerr"

	"golang.org/x/sync/errgroup"
)

// Stems holds exactly one value per name of its layout L, in L's canonical order.
// The zero value is not a valid container, construct one with New, FromFunc or FromMap.
type Stems[L Layout, V any] struct {
	values []V
}

func New[L Layout, V any](values ...V) (Stems[L, V], error) {
	if len(values) != CountOf[L]() {
		return Stems[L, V]{}, cerr.Field("expected", CountOf[L]()).
			Field("actual", len(values)).
			Field("split_type", SplitTypeOf[L]()).
			Error("Wrong number of values for stem layout")
	}

	return Stems[L, V]{values: append([]V{}, values...)}, nil
}

func FromFunc[L Layout, V any](fn func(name Name) V) Stems[L, V] {
	names := NamesOf[L]()
	values := make([]V, len(names))
	for i, name := range names {
		values[i] = fn(name)
	}

	return Stems[L, V]{values: values}
}

// FromMap picks one value per canonical name. Keys outside the layout are an error,
// as is any missing name.
func FromMap[L Layout, V any](m map[Name]V) (Stems[L, V], error) {
	names := NamesOf[L]()
	if len(m) != len(names) {
		return Stems[L, V]{}, cerr.Field("expected", len(names)).
			Field("actual", len(m)).
			Error("Wrong number of entries for stem layout")
	}

	values := make([]V, len(names))
	for i, name := range names {
		value, ok := m[name]
		if !ok {
			return Stems[L, V]{}, cerr.Field("stem", name).Error("Missing stem entry")
		}
		values[i] = value
	}

	return Stems[L, V]{values: values}, nil
}

func (s Stems[L, V]) Len() int {
	return len(s.values)
}

func (s Stems[L, V]) Names() []Name {
	return NamesOf[L]()
}

// Values returns a copy of the values in canonical order.
func (s Stems[L, V]) Values() []V {
	return append([]V{}, s.values...)
}

func (s Stems[L, V]) Get(name Name) (V, bool) {
	for i, n := range NamesOf[L]() {
		if n == name && i < len(s.values) {
			return s.values[i], true
		}
	}

	var zero V
	return zero, false
}

func (s Stems[L, V]) ToMap() map[string]V {
	m := make(map[string]V, len(s.values))
	for i, name := range NamesOf[L]() {
		if i < len(s.values) {
			m[string(name)] = s.values[i]
		}
	}

	return m
}

func (s Stems[L, V]) validate() error {
	if len(s.values) != CountOf[L]() {
		return cerr.Field("expected", CountOf[L]()).
			Field("actual", len(s.values)).
			Error("Stem container does not match its layout")
	}

	return nil
}

// Map applies fn to each slot left to right and stops at the first error.
func Map[L Layout, V any, W any](s Stems[L, V], fn func(name Name, value V) (W, error)) (Stems[L, W], error) {
	if err := s.validate(); err != nil {
		return Stems[L, W]{}, err
	}

	names := NamesOf[L]()
	out := make([]W, len(s.values))
	for i, value := range s.values {
		result, err := fn(names[i], value)
		if err != nil {
			return Stems[L, W]{}, cerr.Field("stem", names[i]).Wrap(err).Error("Failed to map stem")
		}
		out[i] = result
	}

	return Stems[L, W]{values: out}, nil
}

// AsyncMap runs fn for every slot concurrently. Results keep canonical order
// regardless of completion order; the first failure cancels ctx for the others.
func AsyncMap[L Layout, V any, W any](ctx context.Context, s Stems[L, V], fn func(ctx context.Context, name Name, value V) (W, error)) (Stems[L, W], error) {
	if err := s.validate(); err != nil {
		return Stems[L, W]{}, err
	}

	names := NamesOf[L]()
	out := make([]W, len(s.values))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, value := range s.values {
		i, value := i, value
		group.Go(func() error {
			result, err := fn(groupCtx, names[i], value)
			if err != nil {
				return cerr.Field("stem", names[i]).Wrap(err).Error("Failed to map stem")
			}
			out[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Stems[L, W]{}, err
	}

	return Stems[L, W]{values: out}, nil
}

package dummy

import (
	"context"
	"stem-separator-workers/src/application/requests/entity"
	"sync"
)

var _ entity.RequestStore = &RequestStore{}

func NewDummyRequestStore() *RequestStore {
	return &RequestStore{
		Unavailable: false,
		State:       make(map[string]entity.Request),
	}
}

type RequestStore struct {
	Unavailable bool
	State       map[string]entity.Request
	mutex       sync.RWMutex
}

func (r *RequestStore) GetRequest(_ context.Context, requestID string) (entity.Request, error) {
	if r.Unavailable {
		return entity.Request{}, ErrNetworkFailure
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	request, ok := r.State[requestID]
	if !ok {
		return entity.Request{}, ErrNotFound
	}

	return request, nil
}

func (r *RequestStore) SetRequest(_ context.Context, request entity.Request) error {
	if r.Unavailable {
		return ErrNetworkFailure
	}

	if request.ID == "" {
		return ErrUnexpectedInput
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.State[request.ID] = request

	return nil
}

func (r *RequestStore) UpdateRequest(_ context.Context, requestID string, updater entity.RequestUpdater) error {
	if r.Unavailable {
		return ErrNetworkFailure
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	request, ok := r.State[requestID]
	if !ok {
		return ErrNotFound
	}

	updated, err := updater(request)
	if err != nil {
		return err
	}

	r.State[requestID] = updated

	return nil
}

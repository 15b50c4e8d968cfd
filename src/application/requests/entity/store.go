package entity

import "context"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

type RequestUpdater func(request Request) (Request, error)

//counterfeiter:generate . RequestStore
type RequestStore interface {
	GetRequest(ctx context.Context, requestID string) (Request, error)
	SetRequest(ctx context.Context, request Request) error
	UpdateRequest(ctx context.Context, requestID string, updater RequestUpdater) error
}

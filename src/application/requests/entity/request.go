package entity

import (
	"stem-separator-workers/src/lib/cerr"
)

type Status string

const (
	RequestedStatus  Status = "requested"
	ProcessingStatus Status = "processing"
	CompletedStatus  Status = "completed"
	ErrorStatus      Status = "error"
)

type SplitType string

const (
	InvalidSplitType SplitType = ""
	TwoStemsSplit    SplitType = "2stems"
	FourStemsSplit   SplitType = "4stems"
	FiveStemsSplit   SplitType = "5stems"
)

func ConvertToSplitType(val string) (SplitType, error) {
	switch SplitType(val) {
	case TwoStemsSplit, FourStemsSplit, FiveStemsSplit:
		return SplitType(val), nil
	default:
		return InvalidSplitType, cerr.Field("split_type", val).Error("Value does not match any split type")
	}
}

// Request is one separation job as stored in the request table.
type Request struct {
	ID             string            `dynamo:"request_id,hash" json:"request_id"`
	SourceURL      string            `dynamo:"source_url" json:"source_url"`
	SplitType      SplitType         `dynamo:"split_type" json:"split_type"`
	Status         Status            `dynamo:"status" json:"status"`
	StatusMessage  string            `dynamo:"status_message" json:"status_message"`
	StatusDebugLog string            `dynamo:"status_debug_log" json:"status_debug_log"`
	Progress       int               `dynamo:"progress" json:"progress"`
	SavedSourceURL string            `dynamo:"saved_source_url" json:"saved_source_url"`
	StemURLs       map[string]string `dynamo:"stem_urls" json:"stem_urls"`
}

func NewRequest(id string, sourceURL string, splitType SplitType) Request {
	return Request{
		ID:        id,
		SourceURL: sourceURL,
		SplitType: splitType,
		Status:    RequestedStatus,
		StemURLs:  map[string]string{},
	}
}

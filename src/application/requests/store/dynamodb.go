package store

import (
	"context"
	"stem-separator-workers/src/application/requests/entity"
	"stem-separator-workers/src/lib/cerr"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cockroachdb/errors"
	"github.com/guregu/dynamo"
)

const (
	RequestsTable = "SeparationRequests"
	idKey         = "request_id"
	revisionKey   = "revision"
)

var ErrRequestNotFound = errors.New("separation request not found")

var _ entity.RequestStore = DynamoDBRequestStore{}

type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	// Endpoint overrides the AWS endpoint, e.g. a local DynamoDB
	Endpoint string
}

func NewDynamoDB(config Config) *dynamo.DB {
	dbSession := session.Must(session.NewSession())

	dbConfig := aws.NewConfig().
		WithCredentials(credentials.NewStaticCredentials(
			config.AccessKeyID,
			config.SecretAccessKey,
			"",
		)).
		WithRegion(config.Region)

	if config.Endpoint != "" {
		dbConfig = dbConfig.WithEndpoint(config.Endpoint)
	}

	return dynamo.New(dbSession, dbConfig)
}

func NewDynamoDBRequestStore(db *dynamo.DB) DynamoDBRequestStore {
	return DynamoDBRequestStore{
		table: db.Table(RequestsTable),
	}
}

type DynamoDBRequestStore struct {
	table dynamo.Table
}

type dbRequest struct {
	entity.Request
	Revision int `dynamo:"revision"`
}

func (d DynamoDBRequestStore) GetRequest(ctx context.Context, requestID string) (entity.Request, error) {
	request, err := d.get(ctx, requestID)
	if err != nil {
		return entity.Request{}, err
	}

	return request.Request, nil
}

func (d DynamoDBRequestStore) get(ctx context.Context, requestID string) (dbRequest, error) {
	errctx := cerr.Field("request_id", requestID)

	value := dbRequest{}
	err := d.table.Get(idKey, requestID).
		Consistent(true).
		OneWithContext(ctx, &value)

	switch {
	case errors.Is(err, dynamo.ErrNotFound):
		return dbRequest{}, errctx.Wrap(errors.Mark(err, ErrRequestNotFound)).Error("Request does not exist")
	case err != nil:
		return dbRequest{}, errctx.Wrap(err).Error("Failed to get request from DynamoDB")
	}

	if value.StemURLs == nil {
		value.StemURLs = map[string]string{}
	}

	return value, nil
}

func (d DynamoDBRequestStore) SetRequest(ctx context.Context, request entity.Request) error {
	if request.ID == "" {
		return cerr.Error("Request ID must not be empty")
	}

	err := d.table.Put(dbRequest{Request: request}).RunWithContext(ctx)
	if err != nil {
		return cerr.Field("request_id", request.ID).Wrap(err).Error("Failed to put request in DynamoDB")
	}

	return nil
}

// UpdateRequest applies updater with optimistic concurrency: the write only
// lands if nobody else wrote the request since it was read.
func (d DynamoDBRequestStore) UpdateRequest(ctx context.Context, requestID string, updater entity.RequestUpdater) error {
	errctx := cerr.Field("request_id", requestID)

	current, err := d.get(ctx, requestID)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to read request for update")
	}

	updated, err := updater(current.Request)
	if err != nil {
		return errctx.Wrap(err).Error("The updater failed to make changes to the request")
	}

	updated.ID = requestID
	next := dbRequest{Request: updated, Revision: current.Revision + 1}

	put := d.table.Put(next)
	if current.Revision == 0 {
		put = put.If("attribute_not_exists($) OR $ = ?", revisionKey, revisionKey, 0)
	} else {
		put = put.If("$ = ?", revisionKey, current.Revision)
	}

	if err := put.RunWithContext(ctx); err != nil {
		return errctx.Field("revision", current.Revision).Wrap(err).Error("Failed to write updated request")
	}

	return nil
}

package dynamodb

import (
	"context"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/storage"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBAPI is the subset of the DynamoDB client used by Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store implements storage.KeyValueStore on a DynamoDB table keyed by
// session_id (partition) and record_key (sort), expiring items through the ttl attribute.
type Store struct {
	Client            DynamoDBAPI
	SessionsTableName string
	TTL               time.Duration
	Now               func() time.Time
}

// New creates a new Store.
func New(client DynamoDBAPI, sessionsTable string, ttl time.Duration) *Store {
	return &Store{
		Client:            client,
		SessionsTableName: sessionsTable,
		TTL:               ttl,
		Now:               time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.KeyValueStore = (*Store)(nil)

// SessionItem is a single session record in the sessions table.
type SessionItem struct {
	SessionID string `dynamodbav:"session_id"`
	RecordKey string `dynamodbav:"record_key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updated_at"`
	TTL       int64  `dynamodbav:"ttl,omitempty"`
}

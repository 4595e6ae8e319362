package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func itemKey(sessionID, key string) (map[string]any, error) {
	if sessionID == "" {
		return nil, storage.ErrNoSession
	}
	return map[string]any{"session_id": sessionID, "record_key": key}, nil
}

// Get retrieves a session record. Items past their ttl are treated as absent
// because DynamoDB deletes expired items lazily.
func (s *Store) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	k, err := itemKey(sessionID, key)
	if err != nil {
		return "", false, err
	}
	keyAV, err := attributevalue.MarshalMap(k)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal session key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.SessionsTableName),
		Key:            keyAV,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get session record from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return "", false, nil
	}

	var item SessionItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal session record: %w", err)
	}

	if item.TTL != 0 && item.TTL <= s.now().Unix() {
		return "", false, nil
	}

	return item.Value, true, nil
}

// Set writes a session record, refreshing its ttl.
func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return storage.ErrNoSession
	}

	now := s.now()
	item := SessionItem{
		SessionID: sessionID,
		RecordKey: key,
		Value:     value,
		UpdatedAt: now.UTC().Format(time.RFC3339Nano),
	}
	if s.TTL > 0 {
		item.TTL = now.Add(s.TTL).Unix()
	}

	slog.Log(ctx, slog.LevelDebug, "saving session record", "session_id", sessionID, "key", key)

	itemAV, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.SessionsTableName),
		Item:      itemAV,
	})
	if err != nil {
		return fmt.Errorf("failed to put session record in DynamoDB: %w", err)
	}

	return nil
}

// Delete removes a session record.
func (s *Store) Delete(ctx context.Context, sessionID, key string) error {
	k, err := itemKey(sessionID, key)
	if err != nil {
		return err
	}
	keyAV, err := attributevalue.MarshalMap(k)
	if err != nil {
		return fmt.Errorf("failed to marshal session key for deletion: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.SessionsTableName),
		Key:       keyAV,
	})
	if err != nil {
		return fmt.Errorf("failed to delete session record from DynamoDB: %w", err)
	}

	return nil
}

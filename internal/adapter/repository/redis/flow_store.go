package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// FlowStore implements usecase.FlowStore using Redis. Flow documents are
// stored verbatim; the store does not interpret them.
type FlowStore struct {
	client *redis.Client
	prefix string
}

// NewFlowStore creates a new FlowStore.
func NewFlowStore(client *redis.Client) *FlowStore {
	return &FlowStore{
		client: client,
		prefix: "flow:",
	}
}

// Save stores a flow document under id. Flows have no TTL.
func (s *FlowStore) Save(ctx context.Context, id string, doc json.RawMessage) error {
	return s.client.Set(ctx, s.prefix+id, []byte(doc), 0).Err()
}

// Get returns the stored document, or an empty one for an unknown id.
func (s *FlowStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return json.RawMessage("{}"), nil
		}

		return nil, err
	}

	return json.RawMessage(data), nil
}

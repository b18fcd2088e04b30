package redisstore

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/contact"
)

// ContactStore appends submissions to a single Redis list.
type ContactStore struct {
	client *redis.Client
	prefix string
}

func NewContactStore(client *redis.Client, prefix string) *ContactStore {
	return &ContactStore{client: client, prefix: keyPrefix(prefix)}
}

func (s *ContactStore) Create(ctx context.Context, msg contact.Message) (contact.Message, error) {
	id, err := s.client.Incr(ctx, s.prefix+":contact:seq").Result()
	if err != nil {
		return contact.Message{}, apperr.Storage("redis incr contact id", err)
	}

	msg.ID = id
	msg.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(msg)
	if err != nil {
		return contact.Message{}, apperr.Storage("marshal contact message", err)
	}
	if err := s.client.RPush(ctx, s.listKey(), payload).Err(); err != nil {
		return contact.Message{}, apperr.Storage("redis push contact message", err)
	}
	return msg, nil
}

func (s *ContactStore) List(ctx context.Context) ([]contact.Message, error) {
	raw, err := s.client.LRange(ctx, s.listKey(), 0, -1).Result()
	if err != nil {
		return nil, apperr.Storage("redis range contact messages", err)
	}

	out := make([]contact.Message, 0, len(raw))
	for _, item := range raw {
		var msg contact.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, apperr.Storage("unmarshal contact message", err)
		}
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ContactStore) listKey() string {
	return s.prefix + ":contact:messages"
}

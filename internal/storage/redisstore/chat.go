package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
)

// ChatStore keeps one JSON list per session. Ids come from a single INCR counter.
type ChatStore struct {
	client *redis.Client
	prefix string
}

func NewChatStore(client *redis.Client, prefix string) *ChatStore {
	return &ChatStore{client: client, prefix: keyPrefix(prefix)}
}

func (s *ChatStore) Append(ctx context.Context, role chat.Role, content, sessionID string) (chat.Turn, error) {
	if !role.Valid() {
		return chat.Turn{}, chat.ErrInvalidRole
	}

	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return chat.Turn{}, apperr.Storage("redis incr turn id", err)
	}

	turn := chat.Turn{
		ID:        id,
		Role:      role,
		Content:   content,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(turn)
	if err != nil {
		return chat.Turn{}, apperr.Storage("marshal chat turn", err)
	}
	if err := s.client.RPush(ctx, s.sessionKey(sessionID), payload).Err(); err != nil {
		return chat.Turn{}, apperr.Storage("redis push chat turn", err)
	}
	return turn, nil
}

// ListBySession sorts by id because INCR and RPUSH of concurrent appends may interleave.
func (s *ChatStore) ListBySession(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	raw, err := s.client.LRange(ctx, s.sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, apperr.Storage("redis range chat turns", err)
	}

	turns := make([]chat.Turn, 0, len(raw))
	for _, item := range raw {
		var turn chat.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, apperr.Storage("unmarshal chat turn", err)
		}
		turns = append(turns, turn)
	}
	sort.Slice(turns, func(i, j int) bool { return turns[i].ID < turns[j].ID })
	return turns, nil
}

func (s *ChatStore) seqKey() string {
	return s.prefix + ":chat:seq"
}

func (s *ChatStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:chat:session:%s", s.prefix, sessionID)
}

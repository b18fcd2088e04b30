package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/contact"
)

// testClient connects to TEST_REDIS_ADDR and returns a unique key prefix whose keys are
// removed after the test.
func testClient(tb testing.TB) (*redis.Client, string) {
	tb.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		tb.Skip("set TEST_REDIS_ADDR to run redis store tests")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	if err != nil {
		tb.Fatalf("connect redis: %v", err)
	}

	prefix := "test-" + uuid.NewString()
	tb.Cleanup(func() {
		keys, _ := client.Keys(ctx, prefix+":*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		_ = client.Close()
	})
	return client, prefix
}

func TestChatStoreAppendAndList(t *testing.T) {
	client, prefix := testClient(t)
	store := NewChatStore(client, prefix)
	ctx := context.Background()

	if _, err := store.Append(ctx, chat.RoleUser, "hi", "s1"); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if _, err := store.Append(ctx, chat.RoleUser, "other", "s2"); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if _, err := store.Append(ctx, chat.RoleAssistant, "hello", "s1"); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	turns, err := store.ListBySession(ctx, "s1")
	if err != nil {
		t.Fatalf("ListBySession err: %v", err)
	}
	if len(turns) != 2 || turns[0].Content != "hi" || turns[1].Role != chat.RoleAssistant {
		t.Fatalf("unexpected turns: %+v", turns)
	}
	if turns[0].ID != 1 || turns[1].ID != 3 {
		t.Fatalf("expected store-wide ids 1 and 3, got %d and %d", turns[0].ID, turns[1].ID)
	}

	empty, err := store.ListBySession(ctx, "missing")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %v / %v", empty, err)
	}
}

func TestContactStoreCreateAndList(t *testing.T) {
	client, prefix := testClient(t)
	store := NewContactStore(client, prefix)
	ctx := context.Background()

	for _, subject := range []string{"first", "second"} {
		if _, err := store.Create(ctx, contact.Message{Name: "Ada", Email: "ada@example.com", Subject: subject, Message: "hello there friend"}); err != nil {
			t.Fatalf("Create err: %v", err)
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(all) != 2 || all[0].Subject != "first" || all[1].ID != 2 {
		t.Fatalf("unexpected listing: %+v", all)
	}
}

package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/persona"
)

type fakeChatModel struct {
	reply  string
	chunks []string
	err    error
	input  []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	msgs := make([]*schema.Message, 0, len(f.chunks))
	for _, c := range f.chunks {
		msgs = append(msgs, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

func sampleHistory() []chat.Turn {
	return []chat.Turn{
		{ID: 1, Role: chat.RoleUser, Content: "What does he build?", SessionID: "s"},
		{ID: 2, Role: chat.RoleAssistant, Content: "ML tools and interfaces.", SessionID: "s"},
		{ID: 3, Role: chat.RoleUser, Content: "Any {braces} here?", SessionID: "s"},
	}
}

func TestCompletePrependsSystemPrompt(t *testing.T) {
	fake := &fakeChatModel{reply: "He builds things."}
	p := persona.Default()
	svc, err := newService(context.Background(), fake, p, false, nil)
	if err != nil {
		t.Fatalf("newService err: %v", err)
	}

	reply, err := svc.Complete(context.Background(), sampleHistory())
	if err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if reply != "He builds things." {
		t.Fatalf("unexpected reply %q", reply)
	}

	if len(fake.input) != 4 {
		t.Fatalf("expected system + 3 history messages, got %d", len(fake.input))
	}
	if fake.input[0].Role != schema.System || fake.input[0].Content != p.SystemPrompt {
		t.Fatalf("unexpected system message: %+v", fake.input[0])
	}
	wantRoles := []schema.RoleType{schema.User, schema.Assistant, schema.User}
	for i, role := range wantRoles {
		if fake.input[i+1].Role != role {
			t.Fatalf("message %d: expected role %s, got %s", i+1, role, fake.input[i+1].Role)
		}
	}
	if fake.input[3].Content != "Any {braces} here?" {
		t.Fatalf("history content altered: %q", fake.input[3].Content)
	}
}

func TestCompletePropagatesModelError(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("rate limited")}
	svc, err := newService(context.Background(), fake, persona.Default(), false, nil)
	if err != nil {
		t.Fatalf("newService err: %v", err)
	}

	if _, err := svc.Complete(context.Background(), sampleHistory()); err == nil {
		t.Fatal("expected error from model")
	}
}

func TestStreamCompleteConcatenatesChunks(t *testing.T) {
	fake := &fakeChatModel{chunks: []string{"He ", "builds ", "things."}}
	svc, err := newService(context.Background(), fake, persona.Default(), true, nil)
	if err != nil {
		t.Fatalf("newService err: %v", err)
	}

	var deltas []string
	reply, err := svc.StreamComplete(context.Background(), sampleHistory(), func(c string) {
		deltas = append(deltas, c)
	})
	if err != nil {
		t.Fatalf("StreamComplete err: %v", err)
	}
	if reply != "He builds things." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if len(deltas) != 3 {
		t.Fatalf("expected 3 deltas, got %v", deltas)
	}
}

func TestStreamCompleteDisabledFallsBackToGenerate(t *testing.T) {
	fake := &fakeChatModel{reply: "whole reply"}
	svc, err := newService(context.Background(), fake, persona.Default(), false, nil)
	if err != nil {
		t.Fatalf("newService err: %v", err)
	}

	var deltas []string
	reply, err := svc.StreamComplete(context.Background(), sampleHistory(), func(c string) {
		deltas = append(deltas, c)
	})
	if err != nil {
		t.Fatalf("StreamComplete err: %v", err)
	}
	if reply != "whole reply" || len(deltas) != 1 {
		t.Fatalf("unexpected reply %q deltas %v", reply, deltas)
	}
}

func TestBuildSystemPromptFallback(t *testing.T) {
	p := persona.Default()
	p.SystemPrompt = ""

	got := BuildSystemPrompt(p)
	if !strings.Contains(got, p.Owner) || !strings.Contains(got, "AI/ML") {
		t.Fatalf("fallback prompt missing persona details: %s", got)
	}
}

func TestUnavailableAlwaysFails(t *testing.T) {
	_, err := Unavailable{Reason: "OPENAI_API_KEY is not set"}.Complete(context.Background(), sampleHistory())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected reason in error, got %v", err)
	}
}

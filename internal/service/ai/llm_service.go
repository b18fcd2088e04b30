package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/hrishikeshyadav/portfolio/backend/internal/config"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/persona"
)

// Service sends a persona system prompt plus the conversation history to a chat model.
type Service struct {
	chatModel model.BaseChatModel
	persona   persona.Persona
	system    string
	streaming bool
	chain     compose.Runnable[map[string]any, *schema.Message]
	log       *logger.Logger
}

// NewService creates the configured provider model and compiles the prompt chain around it.
func NewService(ctx context.Context, cfg config.AIConfig, p persona.Persona, log *logger.Logger) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return newService(ctx, chatModel, p, cfg.StreamResponse, log)
}

func newService(ctx context.Context, chatModel model.BaseChatModel, p persona.Persona, streaming bool, log *logger.Logger) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", false),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		persona:   p,
		system:    BuildSystemPrompt(p),
		streaming: streaming,
		chain:     runnable,
		log:       logger.OrNop(log),
	}, nil
}

// StreamingEnabled 指示是否开启流式输出。
func (s *Service) StreamingEnabled() bool {
	return s.streaming
}

// Complete returns one assistant reply for the ordered history.
func (s *Service) Complete(ctx context.Context, history []chat.Turn) (string, error) {
	response, err := s.chain.Invoke(ctx, s.buildChainInput(history))
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return "", errors.New("chat model returned no message")
	}

	s.log.Debug("generated response", "persona", s.persona.ID, "history_len", len(history), "length", len(response.Content))
	return response.Content, nil
}

// StreamComplete streams the reply, calling onDelta for each non-empty chunk, and returns the
// concatenated message. With streaming disabled it degrades to Complete plus one delta.
func (s *Service) StreamComplete(ctx context.Context, history []chat.Turn, onDelta func(string)) (string, error) {
	if !s.streaming {
		content, err := s.Complete(ctx, history)
		if err != nil {
			return "", err
		}
		onDelta(content)
		return content, nil
	}

	stream, err := s.chain.Stream(ctx, s.buildChainInput(history))
	if err != nil {
		return "", fmt.Errorf("failed to stream AI chain output: %w", err)
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			onDelta(chunk.Content)
		}
	}

	if len(chunks) == 0 {
		return "", errors.New("chat model stream produced no chunks")
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", fmt.Errorf("failed to concat stream chunks: %w", err)
	}
	return response.Content, nil
}

func (s *Service) buildChainInput(history []chat.Turn) map[string]any {
	return map[string]any{
		"system":  s.system,
		"history": buildHistoryMessages(history),
	}
}

func buildHistoryMessages(turns []chat.Turn) []*schema.Message {
	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return history
}

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
)

// ErrEmptyReply is reported when the provider answers with no content.
var ErrEmptyReply = errors.New("completion provider returned an empty reply")

// Completer produces one assistant reply for an ordered conversation history.
// The system instruction is the completer's concern.
type Completer interface {
	Complete(ctx context.Context, history []chat.Turn) (string, error)
}

// StreamCompleter is implemented by completers that can emit partial content.
// It returns the full reply once the stream is drained.
type StreamCompleter interface {
	Completer
	StreamComplete(ctx context.Context, history []chat.Turn, onDelta func(string)) (string, error)
}

// SendInput is one inbound user message.
type SendInput struct {
	Message   string
	SessionID string
}

// SendResult carries the reply and the session both turns were stored under.
type SendResult struct {
	SessionID string
	Reply     string
}

// StreamHooks observe the streaming relay. Any hook may be nil.
type StreamHooks struct {
	// OnStart fires after the user turn is stored, before the provider is called.
	OnStart func(sessionID string)
	OnDelta func(content string)
}

// RelayOption customises a Relay.
type RelayOption func(*Relay)

// WithHistoryLimit keeps only the most recent n turns in provider requests. n <= 0 sends everything.
func WithHistoryLimit(n int) RelayOption {
	return func(r *Relay) { r.historyLimit = n }
}

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) RelayOption {
	return func(r *Relay) { r.log = logger.OrNop(l) }
}

// WithSessionIDGenerator overrides how fresh session ids are minted.
func WithSessionIDGenerator(fn func() string) RelayOption {
	return func(r *Relay) {
		if fn != nil {
			r.newSessionID = fn
		}
	}
}

// Relay turns one user message into one assistant reply, keeping per-session context in a Store.
type Relay struct {
	store        Store
	completer    Completer
	historyLimit int
	newSessionID func() string
	log          *logger.Logger
}

// NewRelay wires a relay over the given store and completion provider.
func NewRelay(store Store, completer Completer, opts ...RelayOption) *Relay {
	r := &Relay{
		store:        store,
		completer:    completer,
		newSessionID: uuid.NewString,
		log:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Send stores the user message, asks the provider for a reply and stores that reply.
//
// If the provider fails the user turn stays stored and no assistant turn is written.
func (r *Relay) Send(ctx context.Context, in SendInput) (SendResult, error) {
	return r.relay(ctx, in, StreamHooks{}, r.completer.Complete)
}

// SendStream behaves like Send but forwards partial content through hooks when the
// provider supports streaming. Otherwise the whole reply is delivered as a single delta.
func (r *Relay) SendStream(ctx context.Context, in SendInput, hooks StreamHooks) (SendResult, error) {
	streamer, ok := r.completer.(StreamCompleter)
	if !ok {
		return r.relay(ctx, in, hooks, func(ctx context.Context, history []chat.Turn) (string, error) {
			reply, err := r.completer.Complete(ctx, history)
			if err == nil && hooks.OnDelta != nil {
				hooks.OnDelta(reply)
			}
			return reply, err
		})
	}

	onDelta := hooks.OnDelta
	if onDelta == nil {
		onDelta = func(string) {}
	}
	return r.relay(ctx, in, hooks, func(ctx context.Context, history []chat.Turn) (string, error) {
		return streamer.StreamComplete(ctx, history, onDelta)
	})
}

// History returns the stored turns of a session in insertion order.
func (r *Relay) History(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	turns, err := r.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, wrapStorage("list turns", err)
	}
	return turns, nil
}

type completeFunc func(ctx context.Context, history []chat.Turn) (string, error)

func (r *Relay) relay(ctx context.Context, in SendInput, hooks StreamHooks, complete completeFunc) (SendResult, error) {
	if strings.TrimSpace(in.Message) == "" {
		return SendResult{}, apperr.Validation("message", "Message is required")
	}

	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = r.newSessionID()
	}
	log := r.log.With("session_id", sessionID)

	if _, err := r.store.Append(ctx, chat.RoleUser, in.Message, sessionID); err != nil {
		return SendResult{SessionID: sessionID}, wrapStorage("append user turn", err)
	}

	history, err := r.store.ListBySession(ctx, sessionID)
	if err != nil {
		return SendResult{SessionID: sessionID}, wrapStorage("list turns", err)
	}

	if hooks.OnStart != nil {
		hooks.OnStart(sessionID)
	}

	reply, err := complete(ctx, r.window(history))
	if err == nil && strings.TrimSpace(reply) == "" {
		err = ErrEmptyReply
	}
	if err != nil {
		log.Warn("completion failed, user turn kept without reply", "history_len", len(history), "error", err)
		return SendResult{SessionID: sessionID}, apperr.Provider("complete", err)
	}

	if _, err := r.store.Append(ctx, chat.RoleAssistant, reply, sessionID); err != nil {
		return SendResult{SessionID: sessionID}, wrapStorage("append assistant turn", err)
	}

	log.Info("chat relay completed", "history_len", len(history), "reply_len", len(reply))
	return SendResult{SessionID: sessionID, Reply: reply}, nil
}

func (r *Relay) window(history []chat.Turn) []chat.Turn {
	if r.historyLimit <= 0 || len(history) <= r.historyLimit {
		return history
	}
	return history[len(history)-r.historyLimit:]
}

// wrapStorage leaves errors that backends already classified untouched.
func wrapStorage(op string, err error) error {
	if apperr.KindOf(err) != "" {
		return err
	}
	return apperr.Storage(op, err)
}

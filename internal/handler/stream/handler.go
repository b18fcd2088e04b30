package stream

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	chatHandler "github.com/hrishikeshyadav/portfolio/backend/internal/handler/chat"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	chatService "github.com/hrishikeshyadav/portfolio/backend/internal/service/chat"
	"github.com/hrishikeshyadav/portfolio/backend/pkg/utils"
)

// Handler relays chat messages and streams the reply via Server-Sent Events
type Handler struct {
	relay *chatService.Relay
	log   *logger.Logger
}

// New creates a new stream handler
func New(relay *chatService.Relay, log *logger.Logger) *Handler {
	return &Handler{
		relay: relay,
		log:   logger.OrNop(log),
	}
}

// RegisterRoutes 注册流式聊天路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/stream", h.handleStream)
}

// Event is one SSE frame
type Event struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// handleStream stores the user message, then emits start, delta*, message and end events.
// Failures before the stream opens are answered with a JSON error body instead.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "Streaming unsupported", nil)
		return
	}

	query := r.URL.Query()
	started := false
	var sessionID string

	send := func(ev Event) {
		if err := utils.SendSSEChunk(w, flusher, ev); err != nil {
			h.log.Warn("sse write failed", "session_id", sessionID, "error", err)
		}
	}

	result, err := h.relay.SendStream(r.Context(), chatService.SendInput{
		Message:   query.Get("message"),
		SessionID: query.Get("sessionId"),
	}, chatService.StreamHooks{
		OnStart: func(id string) {
			sessionID = id
			started = true
			utils.SetupSSEHeaders(w)
			w.WriteHeader(http.StatusOK)
			send(Event{Event: "start", SessionID: id})
		},
		OnDelta: func(content string) {
			send(Event{Event: "delta", SessionID: sessionID, Content: content})
		},
	})
	if err != nil {
		if apperr.Status(err) >= http.StatusInternalServerError {
			h.log.Error("stream relay failed", "session_id", result.SessionID, "error", err)
		}
		if !started {
			utils.RespondError(w, apperr.Status(err), chatHandler.FailureMessage(err), err)
			return
		}
		send(Event{Event: "error", SessionID: sessionID, Error: err.Error()})
		return
	}

	send(Event{Event: "message", SessionID: result.SessionID, Content: result.Reply})
	send(Event{Event: "end", SessionID: result.SessionID, Finished: true})
}

package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
	chatService "github.com/hrishikeshyadav/portfolio/backend/internal/service/chat"
	"github.com/hrishikeshyadav/portfolio/backend/pkg/utils"
)

// Handler 聊天中继的HTTP处理器
type Handler struct {
	relay *chatService.Relay
	log   *logger.Logger
}

// New 创建聊天处理器
func New(relay *chatService.Relay, log *logger.Logger) *Handler {
	return &Handler{
		relay: relay,
		log:   logger.OrNop(log),
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleSend)
	r.Get("/chat/{sessionID}/history", h.handleHistory)
}

// Request 是 POST /api/chat 的请求体，WebSocket 帧复用同一结构。
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// Response 是成功的聊天响应。
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type historyResponse struct {
	Success   bool        `json:"success"`
	SessionID string      `json:"sessionId"`
	Turns     []chat.Turn `json:"turns"`
}

// FailureMessage 返回与错误类型对应的用户可见提示。
func FailureMessage(err error) string {
	if apperr.KindOf(err) == apperr.KindValidation {
		if apperr.FieldOf(err) == "message" {
			return "Message is required"
		}
		return "Invalid chat request"
	}
	return "Failed to process chat message"
}

// handleSend 处理一条用户消息并返回助手回复
func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.relay.Send(r.Context(), chatService.SendInput{
		Message:   payload.Message,
		SessionID: payload.SessionID,
	})
	if err != nil {
		status := apperr.Status(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("chat relay failed", "session_id", result.SessionID, "error", err)
		}
		utils.RespondError(w, status, FailureMessage(err), err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, Response{
		Success:   true,
		Message:   result.Reply,
		SessionID: result.SessionID,
	})
}

// handleHistory 返回会话的完整记录
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, err := h.relay.History(r.Context(), sessionID)
	if err != nil {
		h.log.Error("load chat history failed", "session_id", sessionID, "error", err)
		utils.RespondError(w, apperr.Status(err), "Failed to load chat history", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, historyResponse{
		Success:   true,
		SessionID: sessionID,
		Turns:     turns,
	})
}

package ws

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	chatHandler "github.com/hrishikeshyadav/portfolio/backend/internal/handler/chat"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	chatService "github.com/hrishikeshyadav/portfolio/backend/internal/service/chat"
	"github.com/hrishikeshyadav/portfolio/backend/pkg/utils"
)

// maxFrameSize 限制单个入站帧的大小
const maxFrameSize = 64 * 1024

// Handler WebSocket聊天处理器
type Handler struct {
	relay    *chatService.Relay
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器，跨域由CORS中间件统一处理
func New(relay *chatService.Relay, log *logger.Logger) *Handler {
	return &Handler{
		relay: relay,
		log:   logger.OrNop(log),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleWebSocket)
}

// handleWebSocket 每个入站文本帧触发一次中继，回复一个与 POST /api/chat 同形的帧
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade 已经写回了 400 响应
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxFrameSize)

	// 帧中省略 sessionId 时沿用本连接上一次的会话
	var lastSessionID string

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("websocket read failed", "session_id", lastSessionID, "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var req chatHandler.Request
		if err := json.Unmarshal(data, &req); err != nil {
			if !h.write(conn, utils.Failure{Success: false, Message: "Invalid request body", Error: err.Error()}) {
				return
			}
			continue
		}
		if req.SessionID == "" {
			req.SessionID = lastSessionID
		}

		result, err := h.relay.Send(r.Context(), chatService.SendInput{
			Message:   req.Message,
			SessionID: req.SessionID,
		})
		if result.SessionID != "" {
			lastSessionID = result.SessionID
		}

		var frame any
		if err != nil {
			if apperr.Status(err) >= http.StatusInternalServerError {
				h.log.Error("websocket relay failed", "session_id", result.SessionID, "error", err)
			}
			frame = utils.Failure{Success: false, Message: chatHandler.FailureMessage(err), Error: err.Error()}
		} else {
			frame = chatHandler.Response{Success: true, Message: result.Reply, SessionID: result.SessionID}
		}

		if !h.write(conn, frame) {
			return
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, frame any) bool {
	if err := conn.WriteJSON(frame); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			h.log.Warn("websocket write failed", "error", err)
		}
		return false
	}
	return true
}

package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrishikeshyadav/portfolio/backend/internal/model/persona"
	"github.com/hrishikeshyadav/portfolio/backend/pkg/utils"
)

// Handler persona服务的HTTP处理器
type Handler struct {
	persona persona.Persona
}

// New 创建persona处理器
func New(p persona.Persona) *Handler {
	return &Handler{
		persona: p,
	}
}

// RegisterRoutes 注册persona相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/persona", h.handleGetPersona)
}

type personaResponse struct {
	Success bool            `json:"success"`
	Persona persona.Persona `json:"persona"`
}

// handleGetPersona 返回聊天组件需要的公开字段，系统指令不会被序列化
func (h *Handler) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, personaResponse{Success: true, Persona: h.persona})
}

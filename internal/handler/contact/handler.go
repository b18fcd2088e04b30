package contact

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrishikeshyadav/portfolio/backend/internal/apperr"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	contactService "github.com/hrishikeshyadav/portfolio/backend/internal/service/contact"
	"github.com/hrishikeshyadav/portfolio/backend/pkg/utils"
)

const failureMessage = "Failed to send message"

// Handler 联系表单的HTTP处理器
type Handler struct {
	svc *contactService.Service
	log *logger.Logger
}

// New 创建联系表单处理器
func New(svc *contactService.Service, log *logger.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: logger.OrNop(log),
	}
}

// RegisterRoutes 注册联系表单路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.handleSubmit)
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleSubmit 校验并保存一条留言
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var in contactService.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, failureMessage, err)
		return
	}

	if _, err := h.svc.Submit(r.Context(), in); err != nil {
		status := apperr.Status(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("contact submission failed", "error", err)
		}
		utils.RespondError(w, status, failureMessage, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, submitResponse{
		Success: true,
		Message: "Message sent successfully",
	})
}

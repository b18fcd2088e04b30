package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hrishikeshyadav/portfolio/backend/internal/handler/chat"
	"github.com/hrishikeshyadav/portfolio/backend/internal/handler/contact"
	"github.com/hrishikeshyadav/portfolio/backend/internal/handler/persona"
	"github.com/hrishikeshyadav/portfolio/backend/internal/handler/stream"
	"github.com/hrishikeshyadav/portfolio/backend/internal/handler/ws"
	"github.com/hrishikeshyadav/portfolio/backend/internal/logger"
	middlewarePkg "github.com/hrishikeshyadav/portfolio/backend/internal/middleware"
	personaModel "github.com/hrishikeshyadav/portfolio/backend/internal/model/persona"
	chatService "github.com/hrishikeshyadav/portfolio/backend/internal/service/chat"
	contactService "github.com/hrishikeshyadav/portfolio/backend/internal/service/contact"
	"github.com/hrishikeshyadav/portfolio/backend/pkg/utils"
)

// Deps 汇总路由需要的核心服务
type Deps struct {
	Log            *logger.Logger
	AllowedOrigins []string
	Relay          *chatService.Relay
	Contact        *contactService.Service
	Persona        personaModel.Persona
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	log := logger.OrNop(deps.Log)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		persona.New(deps.Persona).RegisterRoutes(api)

		// 同一个中继服务于 JSON、SSE 与 WebSocket 三种传输
		chat.New(deps.Relay, log).RegisterRoutes(api)
		stream.New(deps.Relay, log).RegisterRoutes(api)
		ws.New(deps.Relay, log).RegisterRoutes(api)

		contact.New(deps.Contact, log).RegisterRoutes(api)
	})

	return r
}

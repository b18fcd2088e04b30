package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hrishikeshyadav/portfolio/backend/internal/model/chat"
	personaModel "github.com/hrishikeshyadav/portfolio/backend/internal/model/persona"
	chatService "github.com/hrishikeshyadav/portfolio/backend/internal/service/chat"
	contactService "github.com/hrishikeshyadav/portfolio/backend/internal/service/contact"
)

type staticCompleter struct{}

func (staticCompleter) Complete(context.Context, []chat.Turn) (string, error) {
	return "hello from the assistant", nil
}

func newTestRouter() http.Handler {
	return NewRouter(Deps{
		AllowedOrigins: []string{"*"},
		Relay:          chatService.NewRelay(chatService.NewMemoryStore(), staticCompleter{}),
		Contact:        contactService.NewService(contactService.NewMemoryStore(), nil),
		Persona:        personaModel.Default(),
	})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/api/persona", "", http.StatusOK},
		{http.MethodPost, "/api/chat", `{"message":"hi"}`, http.StatusOK},
		{http.MethodPost, "/api/chat", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/api/chat/unknown/history", "", http.StatusOK},
		{http.MethodGet, "/api/chat/stream?message=hi", "", http.StatusOK},
		{http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Long enough message"}`, http.StatusCreated},
		{http.MethodPost, "/api/contact", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/api/missing", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Errorf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.status, resp.Code, resp.Body.String())
		}
	}
}

func TestRouterAppliesCORS(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("expected CORS header")
	}
}

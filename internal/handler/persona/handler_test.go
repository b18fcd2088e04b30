package persona

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hrishikeshyadav/portfolio/backend/internal/model/persona"
)

func TestGetPersonaHidesSystemPrompt(t *testing.T) {
	p := persona.Default()
	r := chi.NewRouter()
	New(p).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/persona", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), p.SystemPrompt) {
		t.Fatal("system prompt must not be exposed")
	}

	var body personaResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Persona.OpeningLine != p.OpeningLine || body.Persona.Name != p.Name {
		t.Fatalf("unexpected body %+v", body)
	}
}

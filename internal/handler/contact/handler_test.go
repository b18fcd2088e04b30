package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	contactModel "github.com/hrishikeshyadav/portfolio/backend/internal/model/contact"
	contactService "github.com/hrishikeshyadav/portfolio/backend/internal/service/contact"
)

type brokenStore struct{}

func (brokenStore) Create(context.Context, contactModel.Message) (contactModel.Message, error) {
	return contactModel.Message{}, errors.New("connection refused")
}

func (brokenStore) List(context.Context) ([]contactModel.Message, error) {
	return nil, errors.New("connection refused")
}

func setupRouter(store contactService.Store) *chi.Mux {
	r := chi.NewRouter()
	New(contactService.NewService(store, nil), nil).RegisterRoutes(r)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSubmitStoresMessage(t *testing.T) {
	store := contactService.NewMemoryStore()
	r := setupRouter(store)

	resp := post(r, `{"name":"Ada","email":"ada@example.com","subject":"Hello","message":"I would like to talk."}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body submitResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message != "Message sent successfully" {
		t.Fatalf("unexpected body %+v", body)
	}

	stored, _ := store.List(context.Background())
	if len(stored) != 1 || stored[0].ID != 1 || stored[0].Email != "ada@example.com" {
		t.Fatalf("unexpected stored messages %+v", stored)
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	store := contactService.NewMemoryStore()
	r := setupRouter(store)

	resp := post(r, `{"name":"Ada","email":"not-an-email","subject":"Hello","message":"I would like to talk."}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != false || body["message"] != failureMessage {
		t.Fatalf("unexpected body %v", body)
	}
	if errText, _ := body["error"].(string); !strings.Contains(errText, "email") {
		t.Fatalf("expected email problem, got %q", errText)
	}

	stored, _ := store.List(context.Background())
	if len(stored) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(stored))
	}
}

func TestSubmitInvalidBody(t *testing.T) {
	resp := post(setupRouter(contactService.NewMemoryStore()), `{"name":`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitStorageFailure(t *testing.T) {
	resp := post(setupRouter(brokenStore{}), `{"name":"Ada","email":"ada@example.com","subject":"Hello","message":"I would like to talk."}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), failureMessage) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

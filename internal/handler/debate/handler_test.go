package debate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	debateservice "debate-arena/internal/service/debate"
)

func setupRouter() (*chi.Mux, *debateservice.Service) {
	svc := debateservice.NewService()
	handler := New(svc, nil)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func TestCreateDebate(t *testing.T) {
	r, svc := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	id, ok := body["id"]
	if !ok || id == "" {
		t.Fatalf("expected an id in response, got %v", body)
	}

	if _, err := svc.Get(context.Background(), id); err != nil {
		t.Fatalf("created debate not in registry: %v", err)
	}
}

func TestListOpenDebates(t *testing.T) {
	r, svc := setupRouter()
	ctx := context.Background()

	open, _ := svc.Create(ctx)
	closed, _ := svc.Create(ctx)
	svc.Close(ctx, closed.ID)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var ids []string
	if err := json.Unmarshal(resp.Body.Bytes(), &ids); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(ids) != 1 || ids[0] != open.ID {
		t.Fatalf("expected only open debate %s, got %v", open.ID, ids)
	}
}

func TestListOpenDebatesEmpty(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	var ids []string
	if err := json.Unmarshal(resp.Body.Bytes(), &ids); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list, got %v", ids)
	}
}

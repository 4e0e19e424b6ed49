package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/chronomart/chronomart-backend/internal/catalog"
	"github.com/chronomart/chronomart-backend/pkg/db/models"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

type stubCatalogService struct {
	watch      catalog.WatchDTO
	page       catalog.WatchesPageDTO
	results    []catalog.WatchDTO
	structured catalog.StructuredSearchDTO
	brands     []models.Brand
	err        error
	gotQuery   string
	gotLimit   int
}

func (s *stubCatalogService) GetWatch(ctx context.Context, id uuid.UUID) (catalog.WatchDTO, error) {
	return s.watch, s.err
}

func (s *stubCatalogService) GetWatchBySlug(ctx context.Context, slug string) (catalog.WatchDTO, error) {
	return s.watch, s.err
}

func (s *stubCatalogService) ListWatches(ctx context.Context, cursor string, limit int) (catalog.WatchesPageDTO, error) {
	s.gotLimit = limit
	return s.page, s.err
}

func (s *stubCatalogService) SearchWatches(ctx context.Context, query string, limit int) ([]catalog.WatchDTO, error) {
	s.gotQuery = query
	s.gotLimit = limit
	return s.results, s.err
}

func (s *stubCatalogService) SearchWatchesStructured(ctx context.Context, query string, limit int) (catalog.StructuredSearchDTO, error) {
	s.gotQuery = query
	s.gotLimit = limit
	return s.structured, s.err
}

func (s *stubCatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.brands, s.err
}

func TestWatchesListDefaultsLimit(t *testing.T) {
	svc := &stubCatalogService{page: catalog.WatchesPageDTO{Items: []catalog.WatchDTO{}, Total: 0}}
	handler := WatchesList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/watches", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotLimit != defaultPageLimit {
		t.Fatalf("expected default limit %d got %d", defaultPageLimit, svc.gotLimit)
	}
}

func TestWatchesListRejectsBadLimit(t *testing.T) {
	handler := WatchesList(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/watches?limit=9999", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestWatchesGetByID(t *testing.T) {
	id := uuid.New()
	svc := &stubCatalogService{watch: catalog.WatchDTO{ID: id, Name: "Submariner", Brand: "Rolex"}}
	handler := WatchesGet(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/watches/"+id.String(), nil)
	req = withURLParam(req, "watchId", id.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data catalog.WatchDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != id {
		t.Fatalf("expected watch %s got %+v", id, envelope.Data)
	}
}

func TestWatchesGetNotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "watch not found")}
	handler := WatchesGet(svc, nil)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/watches/"+id, nil)
	req = withURLParam(req, "watchId", id)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestWatchesSearchTrimsQuery(t *testing.T) {
	svc := &stubCatalogService{results: []catalog.WatchDTO{}}
	handler := WatchesSearch(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/watches/search", bytes.NewReader([]byte(`{"query":"  cheap digital watch  "}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotQuery != "cheap digital watch" {
		t.Fatalf("expected trimmed query got %q", svc.gotQuery)
	}
	if svc.gotLimit != defaultPageLimit {
		t.Fatalf("expected default limit got %d", svc.gotLimit)
	}
}

func TestWatchesSearchStructured(t *testing.T) {
	id := uuid.New()
	svc := &stubCatalogService{structured: catalog.StructuredSearchDTO{
		Items:     []catalog.WatchDTO{{ID: id, Name: "Presage", Brand: "Seiko"}},
		Reasoning: "Seiko watches under $1000",
	}}
	handler := WatchesSearchStructured(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/watches/search-structured", bytes.NewReader([]byte(`{"query":"seiko under 1000"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data catalog.StructuredSearchDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].ID != id {
		t.Fatalf("unexpected items %+v", envelope.Data.Items)
	}
	if envelope.Data.Reasoning == "" {
		t.Fatal("expected reasoning passed through")
	}
	if svc.gotQuery != "seiko under 1000" {
		t.Fatalf("unexpected query %q", svc.gotQuery)
	}
}

func TestWatchesSearchRequiresQuery(t *testing.T) {
	handler := WatchesSearch(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/watches/search", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	cartsvc "github.com/chronomart/chronomart-backend/internal/cart"
	"github.com/chronomart/chronomart-backend/internal/catalog"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

type stubCartService struct {
	cart       cartsvc.CartDTO
	err        error
	addedWatch uuid.UUID
	addedQty   int
	setWatch   uuid.UUID
	setQty     int
	removed    uuid.UUID
	cleared    bool
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (cartsvc.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, userID, watchID uuid.UUID, quantity int) error {
	s.addedWatch = watchID
	s.addedQty = quantity
	return s.err
}

func (s *stubCartService) SetQuantity(ctx context.Context, userID, watchID uuid.UUID, quantity int) error {
	s.setWatch = watchID
	s.setQty = quantity
	return s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, watchID uuid.UUID) error {
	s.removed = watchID
	return s.err
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	s.cleared = true
	return s.err
}

func (s *stubCartService) MoveFromWishlist(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, s.err
}

func TestCartGetReturnsCart(t *testing.T) {
	svc := &stubCartService{cart: cartsvc.CartDTO{
		Items: []cartsvc.CartItemDTO{{
			Watch:          catalog.WatchDTO{ID: uuid.New(), Name: "F-91W", Brand: "Casio"},
			Quantity:       2,
			LineTotalCents: 4000,
			LineTotal:      "$40.00",
		}},
		ItemCount:  2,
		TotalCents: 4000,
		Total:      "$40.00",
	}}
	handler := CartGet(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", nil, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != "$40.00" {
		t.Fatalf("expected formatted total got %+v", envelope.Data)
	}
}

func TestCartAddItemDefaultsQuantity(t *testing.T) {
	watchID := uuid.New()
	svc := &stubCartService{}
	handler := CartAddItem(svc, nil)

	payload := []byte(`{"watch_id":"` + watchID.String() + `"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", payload, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.addedWatch != watchID {
		t.Fatalf("expected watch %s got %s", watchID, svc.addedWatch)
	}
	if svc.addedQty != 1 {
		t.Fatalf("expected default quantity 1 got %d", svc.addedQty)
	}
}

func TestCartAddItemUnknownWatchIs404(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "watch not found")}
	handler := CartAddItem(svc, nil)

	payload := []byte(`{"watch_id":"` + uuid.NewString() + `","quantity":1}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", payload, uuid.New()))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartUpdateItemPassesQuantity(t *testing.T) {
	watchID := uuid.New()
	svc := &stubCartService{}
	handler := CartUpdateItem(svc, nil)

	req := authedRequest(http.MethodPut, "/api/v1/cart/items/"+watchID.String(), []byte(`{"quantity":0}`), uuid.New())
	req = withURLParam(req, "watchId", watchID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.setWatch != watchID || svc.setQty != 0 {
		t.Fatalf("expected set(%s, 0) got set(%s, %d)", watchID, svc.setWatch, svc.setQty)
	}
}

func TestCartRemoveItemRejectsBadID(t *testing.T) {
	svc := &stubCartService{}
	handler := CartRemoveItem(svc, nil)

	req := authedRequest(http.MethodDelete, "/api/v1/cart/items/not-a-uuid", nil, uuid.New())
	req = withURLParam(req, "watchId", "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartClearInvokesService(t *testing.T) {
	svc := &stubCartService{}
	handler := CartClear(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/v1/cart", nil, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatal("expected clear to be called")
	}
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/chronomart/chronomart-backend/api/middleware"
	"github.com/chronomart/chronomart-backend/internal/assistant"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

type stubAssistantService struct {
	result  assistant.ActionResult
	err     error
	gotUser uuid.UUID
	gotReq  assistant.ActionRequest
}

func (s *stubAssistantService) Execute(ctx context.Context, userID uuid.UUID, req assistant.ActionRequest) (assistant.ActionResult, error) {
	s.gotUser = userID
	s.gotReq = req
	return s.result, s.err
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestAssistantActionSuccess(t *testing.T) {
	userID := uuid.New()
	watchID := uuid.New()
	svc := &stubAssistantService{result: assistant.ActionResult{
		Success: true,
		Message: "Added Casio F-91W by Casio to your cart.",
		Action:  "add_to_cart",
		WatchID: &watchID,
	}}
	handler := AssistantAction(svc, nil)

	payload := []byte(`{"message":"add the cheapest watch to my cart","context":[]}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/assistant/actions", payload, userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotUser != userID {
		t.Fatalf("expected user %s got %s", userID, svc.gotUser)
	}
	if svc.gotReq.Message != "add the cheapest watch to my cart" {
		t.Fatalf("unexpected message: %s", svc.gotReq.Message)
	}

	var envelope struct {
		Data assistant.ActionResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Success {
		t.Fatalf("expected success result got %+v", envelope.Data)
	}
	if envelope.Data.WatchID == nil || *envelope.Data.WatchID != watchID {
		t.Fatalf("expected watch id in payload got %+v", envelope.Data.WatchID)
	}
}

func TestAssistantActionRejectedResultIs200(t *testing.T) {
	svc := &stubAssistantService{result: assistant.ActionResult{
		Success: false,
		Message: "your cart is empty",
		Action:  "create_order",
	}}
	handler := AssistantAction(svc, nil)

	payload := []byte(`{"message":"place my order"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/assistant/actions", payload, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data assistant.ActionResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Success {
		t.Fatal("expected success=false result")
	}
	if envelope.Data.Message != "your cart is empty" {
		t.Fatalf("unexpected message: %s", envelope.Data.Message)
	}
}

func TestAssistantActionExtractionFailureIs400(t *testing.T) {
	svc := &stubAssistantService{err: pkgerrors.New(pkgerrors.CodeExtraction, "could not understand the action")}
	handler := AssistantAction(svc, nil)

	payload := []byte(`{"message":"mmmph"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/assistant/actions", payload, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAssistantActionUnresolvedReferenceIs404(t *testing.T) {
	svc := &stubAssistantService{err: pkgerrors.New(pkgerrors.CodeNotFound, "could not find the watch you're referring to: the grail")}
	handler := AssistantAction(svc, nil)

	payload := []byte(`{"message":"add the grail"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/assistant/actions", payload, uuid.New()))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAssistantActionRequiresBodyMessage(t *testing.T) {
	svc := &stubAssistantService{}
	handler := AssistantAction(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/assistant/actions", []byte(`{}`), uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAssistantActionRequiresUserContext(t *testing.T) {
	svc := &stubAssistantService{}
	handler := AssistantAction(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/actions", bytes.NewReader([]byte(`{"message":"hi"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

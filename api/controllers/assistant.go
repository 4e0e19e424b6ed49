package controllers

import (
	"net/http"

	"github.com/chronomart/chronomart-backend/api/responses"
	"github.com/chronomart/chronomart-backend/api/validators"
	"github.com/chronomart/chronomart-backend/internal/assistant"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
	"github.com/chronomart/chronomart-backend/pkg/logger"
)

const maxAssistantMessageLen = 1000

// AssistantAction turns a conversational command into a cart/wishlist/order mutation.
func AssistantAction(svc assistant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assistant service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assistant.ActionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Message = validators.SanitizeString(body.Message, maxAssistantMessageLen)

		result, err := svc.Execute(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

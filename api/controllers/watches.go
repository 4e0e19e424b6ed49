package controllers

import (
	"net/http"
	"strings"

	"github.com/chronomart/chronomart-backend/api/responses"
	"github.com/chronomart/chronomart-backend/api/validators"
	"github.com/chronomart/chronomart-backend/internal/catalog"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
	"github.com/chronomart/chronomart-backend/pkg/logger"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxSearchLen     = 200
)

// WatchesList returns a cursor-paginated slice of the catalog.
func WatchesList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultPageLimit, 1, maxPageLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))
		page, err := svc.ListWatches(r.Context(), cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// WatchesGet returns a single watch by id.
func WatchesGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.URLParamUUID(r, "watchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		watch, err := svc.GetWatch(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, watch)
	}
}

type searchWatchesRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// WatchesSearch runs keyword search over the catalog.
func WatchesSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body searchWatchesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := validators.SanitizeString(body.Query, maxSearchLen)
		limit := body.Limit
		if limit == 0 {
			limit = defaultPageLimit
		}

		results, err := svc.SearchWatches(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"watches": results})
	}
}

// WatchesSearchStructured runs planner-driven search: the query is turned
// into a structured filter plan before execution.
func WatchesSearchStructured(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body searchWatchesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := validators.SanitizeString(body.Query, maxSearchLen)
		limit := body.Limit
		if limit == 0 {
			limit = defaultPageLimit
		}

		result, err := svc.SearchWatchesStructured(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// BrandsList returns every brand in the catalog.
func BrandsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"brands": brands})
	}
}

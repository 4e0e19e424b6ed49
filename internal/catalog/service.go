package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

// ServiceParams groups dependencies for the catalog service. Planner is
// optional; without one, structured search runs the deterministic fallback
// plan.
type ServiceParams struct {
	Repo    *Repository
	Planner Planner
}

// Service exposes read operations over the watch catalog.
type Service interface {
	GetWatch(ctx context.Context, id uuid.UUID) (WatchDTO, error)
	GetWatchBySlug(ctx context.Context, slug string) (WatchDTO, error)
	ListWatches(ctx context.Context, cursor string, limit int) (WatchesPageDTO, error)
	SearchWatches(ctx context.Context, query string, limit int) ([]WatchDTO, error)
	SearchWatchesStructured(ctx context.Context, query string, limit int) (StructuredSearchDTO, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
}

type service struct {
	repo    *Repository
	planner Planner
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: params.Repo, planner: params.Planner}, nil
}

func (s *service) GetWatch(ctx context.Context, id uuid.UUID) (WatchDTO, error) {
	if id == uuid.Nil {
		return WatchDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "watch id is required")
	}
	watch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WatchDTO{}, mapLookupError(err)
	}
	return ToDTO(*watch), nil
}

func (s *service) GetWatchBySlug(ctx context.Context, slug string) (WatchDTO, error) {
	if slug == "" {
		return WatchDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "watch slug is required")
	}
	watch, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return WatchDTO{}, mapLookupError(err)
	}
	return ToDTO(*watch), nil
}

func (s *service) ListWatches(ctx context.Context, cursor string, limit int) (WatchesPageDTO, error) {
	watches, nextCursor, total, err := s.repo.List(ctx, cursor, limit)
	if err != nil {
		return WatchesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list watches")
	}
	items := make([]WatchDTO, 0, len(watches))
	for _, w := range watches {
		items = append(items, ToDTO(w))
	}
	return WatchesPageDTO{Items: items, NextCursor: nextCursor, Total: int(total)}, nil
}

func (s *service) SearchWatches(ctx context.Context, query string, limit int) ([]WatchDTO, error) {
	watches, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search watches")
	}
	items := make([]WatchDTO, 0, len(watches))
	for _, w := range watches {
		items = append(items, ToDTO(w))
	}
	return items, nil
}

func (s *service) SearchWatchesStructured(ctx context.Context, query string, limit int) (StructuredSearchDTO, error) {
	plan := FallbackPlan(query)
	if s.planner != nil {
		planned, err := s.planner.Plan(ctx, query)
		if err != nil {
			return StructuredSearchDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "plan search")
		}
		plan = planned
	}

	watches, err := s.repo.SearchByPlan(ctx, plan, limit)
	if err != nil {
		return StructuredSearchDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search watches")
	}
	items := make([]WatchDTO, 0, len(watches))
	for _, w := range watches {
		items = append(items, ToDTO(w))
	}
	return StructuredSearchDTO{Items: items, Reasoning: plan.Reasoning}, nil
}

func (s *service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return brands, nil
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "watch not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load watch")
}

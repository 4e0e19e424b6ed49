package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/internal/catalog"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	CatalogRepo  *catalog.Repository
}

// Service exposes business rules for wishlist management.
type Service interface {
	GetWishlist(ctx context.Context, userID uuid.UUID) (WishlistDTO, error)
	AddItem(ctx context.Context, userID, watchID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, watchID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	wishlistRepo *Repository
	catalogRepo  *catalog.Repository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		catalogRepo:  params.CatalogRepo,
	}, nil
}

// GetWishlist returns the user's saved watches.
func (s *service) GetWishlist(ctx context.Context, userID uuid.UUID) (WishlistDTO, error) {
	if userID == uuid.Nil {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.wishlistRepo.ListItems(ctx, userID)
	if err != nil {
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist items")
	}
	return toWishlistDTO(items), nil
}

// AddItem ensures the watch exists and saves it. Adding the same watch
// twice leaves a single entry.
func (s *service) AddItem(ctx context.Context, userID, watchID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if watchID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "watch id is required")
	}
	if _, err := s.catalogRepo.FindByID(ctx, watchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "watch not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load watch")
	}
	if err := s.wishlistRepo.AddItem(ctx, userID, watchID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
	}
	return nil
}

// RemoveItem drops the wishlist entry regardless of prior state.
func (s *service) RemoveItem(ctx context.Context, userID, watchID uuid.UUID) error {
	if userID == uuid.Nil || watchID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and watch id are required")
	}
	if err := s.wishlistRepo.RemoveItem(ctx, userID, watchID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return nil
}

// Clear empties the user's wishlist.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.wishlistRepo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
	}
	return nil
}

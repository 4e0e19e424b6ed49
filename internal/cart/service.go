package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/internal/catalog"
	"github.com/chronomart/chronomart-backend/internal/wishlist"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	DB           txRunner
	CartRepo     *Repository
	CatalogRepo  *catalog.Repository
	WishlistRepo *wishlist.Repository
}

// Service exposes business rules for cart management.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error)
	AddItem(ctx context.Context, userID, watchID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, userID, watchID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, watchID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	MoveFromWishlist(ctx context.Context, userID uuid.UUID) (int, error)
}

type service struct {
	db           txRunner
	cartRepo     *Repository
	catalogRepo  *catalog.Repository
	wishlistRepo *wishlist.Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	return &service{
		db:           params.DB,
		cartRepo:     params.CartRepo,
		catalogRepo:  params.CatalogRepo,
		wishlistRepo: params.WishlistRepo,
	}, nil
}

// GetCart returns the cart lines with per-line and overall totals.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return toCartDTO(items), nil
}

// AddItem verifies the watch is purchasable and increments the cart line.
func (s *service) AddItem(ctx context.Context, userID, watchID uuid.UUID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if err := s.ensurePurchasable(ctx, userID, watchID); err != nil {
		return err
	}
	if err := s.cartRepo.AddItem(ctx, userID, watchID, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return nil
}

// SetQuantity overwrites the line quantity; zero or below removes the line.
func (s *service) SetQuantity(ctx context.Context, userID, watchID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, watchID)
	}
	if err := s.ensurePurchasable(ctx, userID, watchID); err != nil {
		return err
	}
	if err := s.cartRepo.SetQuantity(ctx, userID, watchID, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set cart quantity")
	}
	return nil
}

// RemoveItem drops the cart line regardless of prior state.
func (s *service) RemoveItem(ctx context.Context, userID, watchID uuid.UUID) error {
	if userID == uuid.Nil || watchID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and watch id are required")
	}
	if err := s.cartRepo.RemoveItem(ctx, userID, watchID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return nil
}

// Clear empties the user's cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// MoveFromWishlist adds one of each saved watch to the cart and empties
// the wishlist, all in one transaction. Returns how many watches moved.
func (s *service) MoveFromWishlist(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	moved := 0
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		items, err := s.wishlistRepo.ListItemsTx(ctx, tx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist items")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCollection, "wishlist is empty")
		}
		for _, item := range items {
			if err := s.cartRepo.AddItemTx(ctx, tx, userID, item.WatchID, 1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
			}
		}
		if err := s.wishlistRepo.ClearTx(ctx, tx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
		}
		moved = len(items)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

func (s *service) ensurePurchasable(ctx context.Context, userID, watchID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if watchID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "watch id is required")
	}
	watch, err := s.catalogRepo.FindByID(ctx, watchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "watch not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load watch")
	}
	if !watch.InStock() {
		return pkgerrors.New(pkgerrors.CodeValidation, "watch is out of stock")
	}
	return nil
}

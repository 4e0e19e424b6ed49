package wishlist

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
)

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	brands := `
CREATE TABLE IF NOT EXISTS brands (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL UNIQUE,
  country TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	watches := `
CREATE TABLE IF NOT EXISTS watches (
  id TEXT PRIMARY KEY,
  brand_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  price_cents INTEGER NOT NULL,
  original_price_cents INTEGER,
  stock INTEGER NOT NULL DEFAULT 0,
  features TEXT NOT NULL DEFAULT '{}',
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	wishlistItems := `
CREATE TABLE IF NOT EXISTS wishlist_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  watch_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, watch_id)
);`
	require.NoError(t, db.Exec(brands).Error)
	require.NoError(t, db.Exec(watches).Error)
	require.NoError(t, db.Exec(wishlistItems).Error)
	return db
}

func seedWatch(t *testing.T, db *gorm.DB, name string) *models.Watch {
	t.Helper()

	brand := &models.Brand{ID: uuid.New(), Name: name + " brand", Slug: strings.ToLower(name) + "-brand"}
	require.NoError(t, db.Create(brand).Error)

	watch := &models.Watch{
		ID:         uuid.New(),
		BrandID:    brand.ID,
		Name:       name,
		Slug:       strings.ToLower(name) + "-" + uuid.NewString()[:8],
		PriceCents: 24900,
		Stock:      5,
		Features:   pq.StringArray{},
		IsActive:   true,
	}
	require.NoError(t, db.Create(watch).Error)
	return watch
}

func TestAddItem_DuplicateLeavesSingleEntry(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	watch := seedWatch(t, db, "Seamaster")
	userID := uuid.New()

	require.NoError(t, repo.AddItem(ctx, userID, watch.ID))
	require.NoError(t, repo.AddItem(ctx, userID, watch.ID))

	var count int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListItems_PreloadsWatch(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	watch := seedWatch(t, db, "Navitimer")
	userID := uuid.New()
	require.NoError(t, repo.AddItem(ctx, userID, watch.ID))

	items, err := repo.ListItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Watch)
	assert.Equal(t, "Navitimer", items[0].Watch.Name)
}

func TestRemoveItem_MissingEntryIsNoop(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.RemoveItem(ctx, uuid.New(), uuid.New()))
}

func TestClear(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.AddItem(ctx, userID, seedWatch(t, db, "Datejust").ID))
	require.NoError(t, repo.AddItem(ctx, userID, seedWatch(t, db, "Explorer").ID))

	require.NoError(t, repo.Clear(ctx, userID))

	items, err := repo.ListItems(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

type fakeCatalog struct {
	byID         map[uuid.UUID]*models.Watch
	cheapest     *models.Watch
	expensive    *models.Watch
	fuzzyMatches map[string]*models.Watch

	fuzzyTerms []string
}

func (f *fakeCatalog) FindByID(ctx context.Context, id uuid.UUID) (*models.Watch, error) {
	if watch, ok := f.byID[id]; ok {
		return watch, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) CheapestInStock(ctx context.Context) (*models.Watch, error) {
	if f.cheapest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.cheapest, nil
}

func (f *fakeCatalog) MostExpensiveInStock(ctx context.Context) (*models.Watch, error) {
	if f.expensive == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.expensive, nil
}

func (f *fakeCatalog) FuzzyFind(ctx context.Context, term string) (*models.Watch, error) {
	f.fuzzyTerms = append(f.fuzzyTerms, term)
	if watch, ok := f.fuzzyMatches[strings.ToLower(term)]; ok {
		return watch, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func namedWatch(name string) *models.Watch {
	return &models.Watch{ID: uuid.New(), Name: name}
}

func TestResolve_TrustedIDWins(t *testing.T) {
	trusted := namedWatch("Speedmaster")
	catalog := &fakeCatalog{
		byID:     map[uuid.UUID]*models.Watch{trusted.ID: trusted},
		cheapest: namedWatch("F-91W"),
	}
	resolver, err := NewResolver(catalog)
	require.NoError(t, err)

	id := trusted.ID
	watch, strategy, err := resolver.Resolve(context.Background(), ResolvedIntent{
		Action:          ActionAddToCart,
		Reference:       "the cheapest one",
		ResolvedWatchID: &id,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, trusted.ID, watch.ID)
	assert.Equal(t, "trusted_id", strategy)
}

func TestResolve_TrustedIDGoneFallsThrough(t *testing.T) {
	cheapest := namedWatch("F-91W")
	catalog := &fakeCatalog{byID: map[uuid.UUID]*models.Watch{}, cheapest: cheapest}
	resolver, err := NewResolver(catalog)
	require.NoError(t, err)

	missing := uuid.New()
	watch, strategy, err := resolver.Resolve(context.Background(), ResolvedIntent{
		Action:          ActionAddToCart,
		Reference:       "the cheapest watch",
		ResolvedWatchID: &missing,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, cheapest.ID, watch.ID)
	assert.Equal(t, "superlative_min", strategy)
}

func TestResolve_Superlatives(t *testing.T) {
	cheapest := namedWatch("F-91W")
	expensive := namedWatch("Nautilus")
	catalog := &fakeCatalog{cheapest: cheapest, expensive: expensive}
	resolver, err := NewResolver(catalog)
	require.NoError(t, err)

	watch, strategy, err := resolver.Resolve(context.Background(), ResolvedIntent{
		Action:    ActionAddToCart,
		Reference: "the cheapest watch",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, cheapest.ID, watch.ID)
	assert.Equal(t, "superlative_min", strategy)

	watch, strategy, err = resolver.Resolve(context.Background(), ResolvedIntent{
		Action:    ActionAddToWishlist,
		Reference: "the most expensive one",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, expensive.ID, watch.ID)
	assert.Equal(t, "superlative_max", strategy)
}

func TestResolve_AnaphoraUsesFirstContextItem(t *testing.T) {
	first := namedWatch("Speedmaster")
	second := namedWatch("Submariner")
	catalog := &fakeCatalog{byID: map[uuid.UUID]*models.Watch{
		first.ID:  first,
		second.ID: second,
	}}
	resolver, err := NewResolver(catalog)
	require.NoError(t, err)

	watch, strategy, err := resolver.Resolve(context.Background(), ResolvedIntent{
		Action:    ActionAddToCart,
		Reference: "that one",
	}, []ContextItem{
		{ID: first.ID, Name: first.Name},
		{ID: second.ID, Name: second.Name},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, watch.ID)
	assert.Equal(t, "anaphora", strategy)
}

func TestResolve_AnaphoraWithoutContextFallsThrough(t *testing.T) {
	match := namedWatch("Submariner")
	catalog := &fakeCatalog{fuzzyMatches: map[string]*models.Watch{"that one": match}}
	resolver, err := NewResolver(catalog)
	require.NoError(t, err)

	watch, strategy, err := resolver.Resolve(context.Background(), ResolvedIntent{
		Action:    ActionAddToCart,
		Reference: "that one",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, match.ID, watch.ID)
	assert.Equal(t, "fuzzy_search", strategy)
}

func TestResolve_FuzzyPrefersNormalizedTerm(t *testing.T) {
	match := namedWatch("F-91W")
	catalog := &fakeCatalog{fuzzyMatches: map[string]*models.Watch{"f91w": match}}
	resolver, err := NewResolver(catalog)
	require.NoError(t, err)

	watch, strategy, err := resolver.Resolve(context.Background(), ResolvedIntent{
		Action:     ActionAddToCart,
		Reference:  "the casio digital",
		SearchTerm: "f91w",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, match.ID, watch.ID)
	assert.Equal(t, "fuzzy_search", strategy)
	assert.Equal(t, []string{"f91w"}, catalog.fuzzyTerms)
}

func TestResolve_NotFoundCarriesReference(t *testing.T) {
	resolver, err := NewResolver(&fakeCatalog{})
	require.NoError(t, err)

	_, _, err = resolver.Resolve(context.Background(), ResolvedIntent{
		Action:    ActionAddToCart,
		Reference: "the grail watch",
	}, nil)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Contains(t, typed.Message(), "the grail watch")
}

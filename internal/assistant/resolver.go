package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

// catalogLookup is the slice of the catalog repository the resolver needs.
type catalogLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Watch, error)
	CheapestInStock(ctx context.Context) (*models.Watch, error)
	MostExpensiveInStock(ctx context.Context) (*models.Watch, error)
	FuzzyFind(ctx context.Context, term string) (*models.Watch, error)
}

// Resolver turns an intent's watch reference into exactly one catalog row.
// Strategies run in a fixed order and the first hit wins.
type Resolver struct {
	catalog    catalogLookup
	strategies []resolveStrategy
}

type resolveStrategy struct {
	name    string
	resolve func(ctx context.Context, intent ResolvedIntent, contextItems []ContextItem) (*models.Watch, error)
}

var (
	cheapPattern     = regexp.MustCompile(`\bcheap(est)?\b`)
	expensivePattern = regexp.MustCompile(`\b(most expensive|expensive|priciest)\b`)
	anaphoraPattern  = regexp.MustCompile(`\b(that|this|it)\b`)
)

// NewResolver builds a resolver over the provided catalog lookup.
func NewResolver(catalog catalogLookup) (*Resolver, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog lookup is required")
	}
	r := &Resolver{catalog: catalog}
	r.strategies = []resolveStrategy{
		{name: "trusted_id", resolve: r.trustedID},
		{name: "superlative_min", resolve: r.superlativeMin},
		{name: "superlative_max", resolve: r.superlativeMax},
		{name: "anaphora", resolve: r.anaphora},
		{name: "fuzzy_search", resolve: r.fuzzySearch},
	}
	return r, nil
}

// Resolve returns the matched watch and the name of the strategy that
// produced it. Global actions never reach this method.
func (r *Resolver) Resolve(ctx context.Context, intent ResolvedIntent, contextItems []ContextItem) (*models.Watch, string, error) {
	for _, strategy := range r.strategies {
		watch, err := strategy.resolve(ctx, intent, contextItems)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve watch reference")
		}
		if watch != nil {
			return watch, strategy.name, nil
		}
	}
	return nil, "", pkgerrors.New(
		pkgerrors.CodeNotFound,
		fmt.Sprintf("could not find the watch you're referring to: %s", intent.Reference),
	)
}

func (r *Resolver) trustedID(ctx context.Context, intent ResolvedIntent, _ []ContextItem) (*models.Watch, error) {
	if intent.ResolvedWatchID == nil {
		return nil, nil
	}
	return r.catalog.FindByID(ctx, *intent.ResolvedWatchID)
}

func (r *Resolver) superlativeMin(ctx context.Context, intent ResolvedIntent, _ []ContextItem) (*models.Watch, error) {
	if !cheapPattern.MatchString(strings.ToLower(intent.Reference)) {
		return nil, nil
	}
	return r.catalog.CheapestInStock(ctx)
}

func (r *Resolver) superlativeMax(ctx context.Context, intent ResolvedIntent, _ []ContextItem) (*models.Watch, error) {
	if !expensivePattern.MatchString(strings.ToLower(intent.Reference)) {
		return nil, nil
	}
	return r.catalog.MostExpensiveInStock(ctx)
}

func (r *Resolver) anaphora(ctx context.Context, intent ResolvedIntent, contextItems []ContextItem) (*models.Watch, error) {
	if len(contextItems) == 0 {
		return nil, nil
	}
	if !anaphoraPattern.MatchString(strings.ToLower(intent.Reference)) {
		return nil, nil
	}
	return r.catalog.FindByID(ctx, contextItems[0].ID)
}

func (r *Resolver) fuzzySearch(ctx context.Context, intent ResolvedIntent, _ []ContextItem) (*models.Watch, error) {
	term := intent.SearchTerm
	if term == "" {
		term = intent.Reference
	}
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	return r.catalog.FuzzyFind(ctx, term)
}

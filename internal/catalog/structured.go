package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chronomart/chronomart-backend/pkg/config"
	"github.com/chronomart/chronomart-backend/pkg/groq"
)

// Sort keys the planner may emit.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// SearchPlan is the closed set of filters a planner may produce. The model
// proposes a plan, the repository executes it; generated SQL never crosses
// the boundary.
type SearchPlan struct {
	Term          string `json:"term"`
	Brand         string `json:"brand"`
	MinPriceCents *int   `json:"min_price_cents"`
	MaxPriceCents *int   `json:"max_price_cents"`
	OnSaleOnly    bool   `json:"on_sale_only"`
	Sort          string `json:"sort"`
	Reasoning     string `json:"reasoning"`
}

// Planner turns a free-text search request into a SearchPlan.
type Planner interface {
	Plan(ctx context.Context, query string) (SearchPlan, error)
}

type chatCompleter interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type groqPlanner struct {
	client chatCompleter
	cfg    config.AssistantConfig
}

// NewGroqPlanner builds the production query planner over the Groq chat client.
func NewGroqPlanner(client *groq.Client, cfg config.AssistantConfig) (Planner, error) {
	if client == nil {
		return nil, fmt.Errorf("groq client is required")
	}
	return &groqPlanner{client: client, cfg: cfg}, nil
}

const plannerSystemPrompt = `You convert a shopper's search request for a watch storefront into a JSON query plan.

The catalog stores watches with: name, brand name, description, price_cents (current price in cents), original_price_cents (pre-discount price in cents, null when never discounted), stock.

Respond with a single JSON object and nothing else:
{
  "term": keywords to match against name, description, and brand ("" when the request is purely a filter),
  "brand": a brand name when one is clearly requested ("" otherwise),
  "min_price_cents": integer lower price bound or null,
  "max_price_cents": integer upper price bound or null,
  "on_sale_only": true only when the shopper asks for discounts or sales,
  "sort": one of "price_asc", "price_desc", "newest",
  "reasoning": one short sentence explaining the plan
}
Rules:
- Dollar amounts in the request convert to cents.
- "luxury" or "expensive" without an amount means min_price_cents 500000 and sort "price_desc".
- "cheap" or "affordable" without an amount means max_price_cents 50000 and sort "price_asc".
- Any price bound without a stated preference sorts "price_asc".
- No filters at all means an empty plan sorted "newest".`

func (p *groqPlanner) Plan(ctx context.Context, query string) (SearchPlan, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return FallbackPlan(query), nil
	}
	if p.cfg.ExtractionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.ExtractionTimeout)
		defer cancel()
	}

	raw, err := p.client.CompleteJSON(ctx, plannerSystemPrompt, "Search request: "+trimmed)
	if err != nil {
		return SearchPlan{}, fmt.Errorf("plan search: %w", err)
	}

	var plan SearchPlan
	if err := json.Unmarshal([]byte(groq.StripFences(raw)), &plan); err != nil {
		// unparsable plan degrades to a plain keyword search
		return FallbackPlan(query), nil
	}
	switch plan.Sort {
	case SortPriceAsc, SortPriceDesc, SortNewest:
	default:
		plan.Sort = SortNewest
	}
	return plan, nil
}

// FallbackPlan is the deterministic plan used when no planner output is
// usable: the raw query as a keyword term, newest first.
func FallbackPlan(query string) SearchPlan {
	return SearchPlan{Term: strings.TrimSpace(query), Sort: SortNewest}
}

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/chronomart/chronomart-backend/pkg/config"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
	"github.com/chronomart/chronomart-backend/pkg/groq"
)

// Extractor classifies a free-text command into a structured intent. The
// model behind it is a noisy oracle: output is validated, never trusted.
type Extractor interface {
	Extract(ctx context.Context, message string, contextItems []ContextItem) (ResolvedIntent, error)
}

type chatCompleter interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type groqExtractor struct {
	client  chatCompleter
	timeout config.AssistantConfig
}

// NewGroqExtractor builds the production extractor over the Groq chat client.
func NewGroqExtractor(client *groq.Client, cfg config.AssistantConfig) (Extractor, error) {
	if client == nil {
		return nil, fmt.Errorf("groq client is required")
	}
	return &groqExtractor{client: client, timeout: cfg}, nil
}

const extractionSystemPrompt = `You classify a shopper's message for a watch storefront into a JSON action.
Respond with a single JSON object and nothing else:
{
  "action": one of "add_to_cart", "update_cart_quantity", "remove_from_cart", "clear_cart", "add_to_wishlist", "remove_from_wishlist", "clear_wishlist", "create_order", "cart_to_order", "wishlist_to_cart", "wishlist_to_order", "unknown",
  "reference": the fragment of the message naming a watch ("" when none),
  "resolved_watch_id": the id of a context item the reference matches, ignoring case, hyphens and spaces ("" when no context item matches),
  "search_term": a normalized catalog search term derived from the reference ("" when none),
  "quantity": requested quantity as an integer (1 when unstated),
  "mode": "set" when the shopper states an absolute quantity ("make it 3"), otherwise "add"
}
Only supply resolved_watch_id when the reference clearly matches one of the provided context items.`

func (e *groqExtractor) Extract(ctx context.Context, message string, contextItems []ContextItem) (ResolvedIntent, error) {
	if e.timeout.ExtractionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout.ExtractionTimeout)
		defer cancel()
	}

	userPrompt, err := buildUserPrompt(message, contextItems, e.timeout.ContextLimit)
	if err != nil {
		return ResolvedIntent{}, pkgerrors.Wrap(pkgerrors.CodeExtraction, err, "could not understand the action")
	}

	raw, err := e.client.CompleteJSON(ctx, extractionSystemPrompt, userPrompt)
	if err != nil {
		return ResolvedIntent{}, pkgerrors.Wrap(pkgerrors.CodeExtraction, err, "could not understand the action")
	}

	return parseExtraction(raw)
}

func buildUserPrompt(message string, contextItems []ContextItem, contextLimit int) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", fmt.Errorf("message is empty")
	}
	if contextLimit > 0 && len(contextItems) > contextLimit {
		contextItems = contextItems[:contextLimit]
	}

	type promptItem struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Brand string `json:"brand"`
	}
	items := make([]promptItem, 0, len(contextItems))
	for _, item := range contextItems {
		items = append(items, promptItem{ID: item.ID.String(), Name: item.Name, Brand: item.Brand})
	}
	contextJSON, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal context: %w", err)
	}

	return fmt.Sprintf("Recently shown watches: %s\n\nShopper message: %s", contextJSON, trimmed), nil
}

type extractionResponse struct {
	Action          string `json:"action"`
	Reference       string `json:"reference"`
	ResolvedWatchID string `json:"resolved_watch_id"`
	SearchTerm      string `json:"search_term"`
	Quantity        int    `json:"quantity"`
	Mode            string `json:"mode"`
}

// parseExtraction decodes model output into an intent. The reply may still
// arrive fence-wrapped when the provider ignores response_format.
func parseExtraction(raw string) (ResolvedIntent, error) {
	cleaned := groq.StripFences(raw)

	var resp extractionResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return ResolvedIntent{}, pkgerrors.Wrap(pkgerrors.CodeExtraction, err, "could not understand the action")
	}

	intent := ResolvedIntent{
		Action:     ParseActionKind(resp.Action),
		Reference:  strings.TrimSpace(resp.Reference),
		SearchTerm: strings.TrimSpace(resp.SearchTerm),
		Quantity:   resp.Quantity,
		Mode:       ParseOperationMode(resp.Mode),
	}
	if intent.Action == ActionUnknown {
		return ResolvedIntent{}, pkgerrors.New(pkgerrors.CodeExtraction, "could not understand the action")
	}
	if intent.Quantity < 1 {
		intent.Quantity = 1
	}
	if id, err := uuid.Parse(strings.TrimSpace(resp.ResolvedWatchID)); err == nil && id != uuid.Nil {
		intent.ResolvedWatchID = &id
	}
	return intent, nil
}

package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronomart/chronomart-backend/pkg/config"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
)

type stubCompleter struct {
	reply string
	err   error

	gotSystem string
	gotUser   string
}

func (s *stubCompleter) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.gotSystem = systemPrompt
	s.gotUser = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestExtract_ParsesModelReply(t *testing.T) {
	watchID := uuid.New()
	completer := &stubCompleter{reply: `{
		"action": "add_to_cart",
		"reference": "the casio",
		"resolved_watch_id": "` + watchID.String() + `",
		"search_term": "casio",
		"quantity": 2,
		"mode": "add"
	}`}
	extractor := &groqExtractor{client: completer, timeout: config.AssistantConfig{ContextLimit: 10}}

	intent, err := extractor.Extract(context.Background(), "add the casio to my cart", []ContextItem{
		{ID: watchID, Name: "F-91W", Brand: "Casio"},
	})
	require.NoError(t, err)

	assert.Equal(t, ActionAddToCart, intent.Action)
	assert.Equal(t, "the casio", intent.Reference)
	require.NotNil(t, intent.ResolvedWatchID)
	assert.Equal(t, watchID, *intent.ResolvedWatchID)
	assert.Equal(t, "casio", intent.SearchTerm)
	assert.Equal(t, 2, intent.Quantity)
	assert.Equal(t, ModeAdd, intent.Mode)

	assert.Contains(t, completer.gotUser, "add the casio to my cart")
	assert.Contains(t, completer.gotUser, "F-91W")
}

func TestExtract_ToleratesCodeFences(t *testing.T) {
	completer := &stubCompleter{reply: "```json\n{\"action\": \"clear_cart\", \"quantity\": 1}\n```"}
	extractor := &groqExtractor{client: completer}

	intent, err := extractor.Extract(context.Background(), "empty my cart", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionClearCart, intent.Action)
}

func TestExtract_UnparsableReply(t *testing.T) {
	completer := &stubCompleter{reply: "sorry, I cannot help with that"}
	extractor := &groqExtractor{client: completer}

	_, err := extractor.Extract(context.Background(), "add something", nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeExtraction, typed.Code())
}

func TestExtract_UnknownAction(t *testing.T) {
	completer := &stubCompleter{reply: `{"action": "launch_rocket"}`}
	extractor := &groqExtractor{client: completer}

	_, err := extractor.Extract(context.Background(), "do something weird", nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeExtraction, typed.Code())
}

func TestExtract_ProviderFailureDegrades(t *testing.T) {
	completer := &stubCompleter{err: errors.New("connection refused")}
	extractor := &groqExtractor{client: completer}

	_, err := extractor.Extract(context.Background(), "add the seiko", nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeExtraction, typed.Code())
}

func TestExtract_EmptyMessage(t *testing.T) {
	extractor := &groqExtractor{client: &stubCompleter{reply: "{}"}}

	_, err := extractor.Extract(context.Background(), "   ", nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeExtraction, typed.Code())
}

func TestParseExtraction_Defaults(t *testing.T) {
	intent, err := parseExtraction(`{"action": "add_to_wishlist", "reference": "the omega"}`)
	require.NoError(t, err)

	assert.Equal(t, 1, intent.Quantity)
	assert.Equal(t, ModeAdd, intent.Mode)
	assert.Nil(t, intent.ResolvedWatchID)
}

func TestParseExtraction_IgnoresMalformedWatchID(t *testing.T) {
	intent, err := parseExtraction(`{"action": "add_to_cart", "reference": "a watch", "resolved_watch_id": "not-a-uuid"}`)
	require.NoError(t, err)
	assert.Nil(t, intent.ResolvedWatchID)
}

package catalog

import (
	"regexp"
	"strings"
)

// Keyword search runs the raw shopper query through two passes before it
// touches SQL: conversational filler is stripped so "show me a submariner"
// searches for "submariner", and intent words (discount/luxury vocabulary)
// are pulled out to drive filtering and ordering instead of being matched
// literally against product text.
var (
	fillerWords = regexp.MustCompile(`\b(i|want|need|show|me|looking|for|some|can|you|find|get|a|an|the|is|are|with|of)\b`)

	discountWords = regexp.MustCompile(`\b(discount|sale|offer|cheap|deal|promo)\b`)
	luxuryWords   = regexp.MustCompile(`\b(luxury|expensive|premium|exclusive)\b`)

	// intent vocabulary plus the product noun itself, removed from the final term
	intentWords = regexp.MustCompile(`\b(discount|sale|offer|cheap|deal|promo|luxury|expensive|premium|exclusive|watch|watches)\b`)

	collapseSpaces = regexp.MustCompile(`\s+`)
)

type searchQuery struct {
	term           string
	discountIntent bool
	luxuryIntent   bool
}

func parseSearchQuery(raw string) searchQuery {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	parsed := searchQuery{
		discountIntent: discountWords.MatchString(lowered),
		luxuryIntent:   luxuryWords.MatchString(lowered),
	}

	term := fillerWords.ReplaceAllString(lowered, " ")
	term = intentWords.ReplaceAllString(term, " ")
	parsed.term = strings.TrimSpace(collapseSpaces.ReplaceAllString(term, " "))
	return parsed
}

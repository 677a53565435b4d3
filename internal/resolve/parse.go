package resolve

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mmcdole/marquee/internal/domain"
)

// Variant selects the prompt and output shape of an assisted search
type Variant int

const (
	// VariantTitles asks for a JSON array of plain title strings
	VariantTitles Variant = iota
	// VariantRecommend asks for a JSON array of {title, explanation} objects
	VariantRecommend
)

// String returns a human-readable variant name
func (v Variant) String() string {
	switch v {
	case VariantTitles:
		return "titles"
	case VariantRecommend:
		return "recommend"
	default:
		return "unknown"
	}
}

type suggestionObject struct {
	Title       *string `json:"title"`
	Explanation *string `json:"explanation"`
}

// ParseSuggestions parses completion text into suggestions.
//
// The text must be a JSON array. Elements may be strings or objects with a
// "title" (and optional "explanation") field, and for title lists also bare
// numbers; other elements and empty titles are skipped. The titles variant
// additionally drops exact duplicates, keeping first occurrence order.
//
// Text that isn't a JSON array returns domain.ErrMalformedModelOutput.
func ParseSuggestions(text string, variant Variant) ([]domain.Suggestion, error) {
	raw := stripCodeFence(text)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty completion", domain.ErrMalformedModelOutput)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedModelOutput, err)
	}

	suggestions := make([]domain.Suggestion, 0, len(elems))
	seen := make(map[string]bool, len(elems))

	for _, elem := range elems {
		s, ok := parseElement(elem, variant)
		if !ok {
			continue
		}
		if variant == VariantTitles {
			// Title lists carry no rationale
			s.Rationale = ""
			if seen[s.Title] {
				continue
			}
			seen[s.Title] = true
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, nil
}

// parseElement interprets one array element as a suggestion. Title lists
// also accept bare numbers, since some titles are years ("1917").
func parseElement(elem json.RawMessage, variant Variant) (domain.Suggestion, bool) {
	trimmed := bytes.TrimSpace(elem)
	if len(trimmed) == 0 {
		return domain.Suggestion{}, false
	}

	switch trimmed[0] {
	case '"':
		var title string
		if err := json.Unmarshal(trimmed, &title); err != nil {
			return domain.Suggestion{}, false
		}
		title = strings.TrimSpace(title)
		return domain.Suggestion{Title: title}, title != ""

	case '{':
		var obj suggestionObject
		if err := json.Unmarshal(trimmed, &obj); err != nil || obj.Title == nil {
			return domain.Suggestion{}, false
		}
		s := domain.Suggestion{Title: strings.TrimSpace(*obj.Title)}
		if obj.Explanation != nil {
			s.Rationale = strings.TrimSpace(*obj.Explanation)
		}
		return s, s.Title != ""

	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if variant != VariantTitles {
			return domain.Suggestion{}, false
		}
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return domain.Suggestion{}, false
		}
		return domain.Suggestion{Title: n.String()}, true
	}

	return domain.Suggestion{}, false
}

// stripCodeFence removes a surrounding markdown code fence, which chat models
// sometimes add despite instructions
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string ("json")
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

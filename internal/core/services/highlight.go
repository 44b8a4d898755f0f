package services

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

const ellipsis = "..."

// Highlight splits text into segments, flagging every case-insensitive
// occurrence of query. Text is returned as a single unmatched segment when
// the query is blank. Concatenating the segments yields the original text.
func Highlight(text, query string) []domain.Segment {
	q := domain.NormaliseQuery(query)
	if q == "" || text == "" {
		return []domain.Segment{{Text: text}}
	}
	needle := []rune(q)

	// lower[i] is the lowercased rune starting at byte offsets[i]; the final
	// offset is len(text) so matches slice the original bytes.
	lower := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text)+1)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		lower = append(lower, unicode.ToLower(r))
		offsets = append(offsets, i)
		i += size
	}
	offsets = append(offsets, len(text))

	var segments []domain.Segment
	last := 0
	for i := 0; i+len(needle) <= len(lower); {
		if !slices.Equal(lower[i:i+len(needle)], needle) {
			i++
			continue
		}
		start, end := offsets[i], offsets[i+len(needle)]
		if start > last {
			segments = append(segments, domain.Segment{Text: text[last:start]})
		}
		segments = append(segments, domain.Segment{Text: text[start:end], Match: true})
		last = end
		i += len(needle)
	}
	if segments == nil {
		return []domain.Segment{{Text: text}}
	}
	if last < len(text) {
		segments = append(segments, domain.Segment{Text: text[last:]})
	}
	return segments
}

// Truncate shortens text to at most limit runes, appending "..." when cut.
// A non-positive limit disables truncation.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + ellipsis
}

package service

import (
	"strings"

	"github.com/bornholm/chatten/internal/fuzzy"
)

const maxQueryLength = 100

type Match struct {
	// Zero-based index of the best matching page
	Index int
	Score float64
	// Found is false when there was no page to search or no page shared
	// anything with the query
	Found bool
}

// PageNumber converts the match to a one-based page number. Page 1 is
// returned both when the first page matched best and when nothing matched.
func (m Match) PageNumber() int {
	if !m.Found || m.Index <= 0 {
		return 1
	}

	return m.Index + 1
}

// NormalizeQuery keeps the first characters of the query, where its salient
// terms are expected to be, and trims surrounding whitespace.
func NormalizeQuery(query string) string {
	runes := []rune(query)
	if len(runes) > maxQueryLength {
		runes = runes[:maxQueryLength]
	}

	return strings.TrimSpace(string(runes))
}

// FindBestMatch scores every page against the query with a partial ratio
// and returns the first page with the highest score.
func FindBestMatch(pages []string, query string) Match {
	if len(pages) == 0 {
		return Match{}
	}

	normalized := NormalizeQuery(query)

	best := Match{Index: 0, Score: -1}
	for idx, page := range pages {
		score := fuzzy.PartialRatio(page, normalized)
		if score > best.Score {
			best.Index = idx
			best.Score = score
		}
	}

	best.Found = best.Score > 0

	return best
}

// LocateRelevantPage returns the one-based number of the page most likely to
// contain the answer to the query.
func LocateRelevantPage(pages []string, query string) int {
	return FindBestMatch(pages, query).PageNumber()
}

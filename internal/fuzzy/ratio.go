// Package fuzzy implements the string similarity scores used to find the
// page of a document matching a free-text query.
//
// Scores range from 0 (nothing in common) to 100 (identical) and are based on
// the Indel distance, where only insertions and deletions are allowed.
package fuzzy

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Ratio returns the normalized Indel similarity of s1 and s2, ie twice the
// length of their longest common subsequence over their total length.
func Ratio(s1, s2 string) float64 {
	l1, l2 := utf8.RuneCountInString(s1), utf8.RuneCountInString(s2)
	if l1 == 0 || l2 == 0 {
		return 0
	}

	return indelScore(edlib.LCS(s1, s2), l1+l2)
}

// PartialRatio returns the best Ratio of the shorter string against the
// windows of the longer one. Windows are the slices of the longer string
// having the length of the shorter one, plus the shorter slices anchored to
// its start and to its end. A string found verbatim in the other scores 100.
func PartialRatio(s1, s2 string) float64 {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}

	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}

	best := partialRatio(r1, r2)

	if best < 100 && len(r1) == len(r2) {
		best = max(best, partialRatio(r2, r1))
	}

	return best
}

// partialRatio expects len(needle) <= len(haystack).
func partialRatio(needle, haystack []rune) float64 {
	n, h := len(needle), len(haystack)

	w := newWindow(needle)
	rawNeedle := string(needle)
	best := 0.0

	// score evaluates haystack[start:end] and reports whether a perfect match
	// was found. Windows that cannot beat the current best are skipped.
	score := func(start, end int) bool {
		total := n + end - start

		if indelScore(w.common, total) <= best {
			return false
		}

		s := indelScore(edlib.LCS(rawNeedle, string(haystack[start:end])), total)
		if s > best {
			best = s
		}

		return best == 100
	}

	for end := 1; end < n; end++ {
		last := haystack[end-1]
		w.add(last)

		// A window ending with a character absent from the needle never
		// scores better than the same window without it
		if !w.matches(last) {
			continue
		}

		if score(0, end) {
			return best
		}
	}

	w.add(haystack[n-1])

	for start := 0; start < h-n; start++ {
		if w.matches(haystack[start+n-1]) && score(start, start+n) {
			return best
		}

		w.remove(haystack[start])
		w.add(haystack[start+n])
	}

	for start := h - n; start < h; start++ {
		if w.matches(haystack[start]) && score(start, h) {
			return best
		}

		w.remove(haystack[start])
	}

	return best
}

func indelScore(lcs int, total int) float64 {
	distance := total - 2*lcs
	return 100 * (1 - float64(distance)/float64(total))
}

// window tracks the characters of a haystack slice shared with the needle.
// common bounds the longest common subsequence of the two.
type window struct {
	need   map[rune]int
	have   map[rune]int
	common int
}

func (w *window) matches(r rune) bool {
	_, exists := w.need[r]
	return exists
}

func (w *window) add(r rune) {
	if w.have[r] < w.need[r] {
		w.common++
	}

	w.have[r]++
}

func (w *window) remove(r rune) {
	w.have[r]--

	if w.have[r] < w.need[r] {
		w.common--
	}
}

func newWindow(needle []rune) *window {
	need := make(map[rune]int)
	for _, r := range needle {
		need[r]++
	}

	return &window{
		need: need,
		have: make(map[rune]int),
	}
}

// Package lcs finds the longest common word prefix and suffix of names. It is
// used to trim noise shared by all variant names, like the "Event" of
// ClickEvent and ScrollEvent.
package lcs

import (
	"cmp"
	"slices"
	"strings"
)

// CommonWordPrefix returns the longest common prefix of the strings in ss based
// on word boundaries detected by [SplitWords].
func CommonWordPrefix(ss []string) string {
	sss := make([][]string, 0, len(ss))
	for _, s := range ss {
		sss = append(sss, SplitWords(s))
	}
	return strings.Join(commonWords(sss), "")
}

// CommonWordSuffix returns the longest common suffix of the strings in ss based
// on word boundaries detected by [SplitWords].
func CommonWordSuffix(ss []string) string {
	sss := make([][]string, 0, len(ss))
	for _, s := range ss {
		words := SplitWords(s)
		slices.Reverse(words)
		sss = append(sss, words)
	}
	suffix := commonWords(sss)
	slices.Reverse(suffix)
	return strings.Join(suffix, "")
}

// TrimCommonWordPrefix removes [CommonWordPrefix] from every string in ss. It
// returns a new slice.
func TrimCommonWordPrefix(ss []string) []string {
	prefix := CommonWordPrefix(ss)
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimPrefix(s, prefix)
	}
	return out
}

// TrimCommonWordSuffix removes [CommonWordSuffix] from every string in ss. It
// returns a new slice.
func TrimCommonWordSuffix(ss []string) []string {
	suffix := CommonWordSuffix(ss)
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSuffix(s, suffix)
	}
	return out
}

// commonWords returns the longest common leading words of the word lists.
func commonWords(words [][]string) []string {
	if len(words) == 0 {
		return nil
	}

	compare := func(a, b []string) int {
		for i := 0; i < min(len(a), len(b)); i++ {
			if c := cmp.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
		return 0
	}

	// After sorting, the words shared by the smallest and the largest lists
	// are shared by all of them.
	slices.SortFunc(words, compare)
	lo := slices.MinFunc(words, compare)
	hi := slices.MaxFunc(words, compare)

	for i := range lo {
		if i >= len(hi) || lo[i] != hi[i] {
			return lo[:i]
		}
	}
	return lo
}

// SplitWords splits a string into words based on character transitions. It
// detects word boundaries at:
//   - Uppercase letter after lowercase letter: "getID" -> "get" + "ID"
//   - Around underscores: "send_nowait" -> "send" + "_" + "nowait"
//   - Around digits: "file2name" -> "file" + "2" + "name"
func SplitWords(s string) []string {
	var words []string
	start := 0
	for start < len(s) {
		end := len(s)
		for j := start + 1; j < len(s); j++ {
			var next byte
			if j != len(s)-1 {
				next = s[j+1]
			}
			if isWordBoundary(s[j-1], s[j], next) {
				end = j
				break
			}
		}
		words = append(words, s[start:end])
		start = end
	}
	return words
}

func isLower(c byte) bool  { return 'a' <= c && c <= 'z' }
func isUpper(c byte) bool  { return 'A' <= c && c <= 'Z' }
func isLetter(c byte) bool { return isLower(c) || isUpper(c) }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }

// isWordBoundary detects word boundaries based on character transitions.
func isWordBoundary(prev, curr, next byte) bool {
	switch {
	case isLower(prev) && isUpper(curr):
		// "getID": "get" | "ID"
		return true
	case isUpper(curr) && isLower(next):
		// "JSONParser": "JSON" | "Parser"
		return true
	case prev != '_' && curr == '_', prev == '_' && curr != '_':
		return true
	case isLetter(prev) && isDigit(curr), isDigit(prev) && isLetter(curr):
		return true
	}
	return false
}

package validate

import (
	"strconv"
	"strings"
)

// Page parses a page query parameter. Empty means page 1; anything that is
// not a positive integer is rejected so the offset arithmetic never sees a
// non-positive page.
func Page(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ID parses a positive integer path parameter.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Query trims a search query and caps its length. Empty after trimming is
// invalid; zero-length searches are a client error, not an empty page.
func Query(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s, true
}

// SortDir normalizes a sort direction. Only asc/desc count; anything else
// returns "" and the caller falls back to the default ordering.
func SortDir(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return "ASC"
	case "desc":
		return "DESC"
	}
	return ""
}

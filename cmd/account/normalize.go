package account

import (
	"net/mail"
	"strings"
)

// NormalizeEmail performs case-insensitive canonicalization.
// Normalization happens before every uniqueness check and lookup so that
// A@x.com and a@x.com are the same identity.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail reports whether s is a syntactically valid address per RFC 5322.
// Display-name forms ("Bob <b@x.com>") are rejected: the store expects a
// bare address.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

package util

import "strings"

// NormalizeEmail canonicalizes an email for identity matching: trimmed and
// lower-cased. Submissions from the quiz UI and certificate requests go through
// the same normalization so "Alice@X.com " and "alice@x.com" match.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName trims surrounding whitespace; case is preserved for display but
// comparisons use NameKey.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NameKey is the case-insensitive form of a name used when no email is available
// to match on.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IdentityKey picks the matching key for a (name, email) pair: the normalized
// email when present, otherwise the case-folded name.
func IdentityKey(name, email string) string {
	if e := NormalizeEmail(email); e != "" {
		return e
	}
	return NameKey(name)
}

package services

import (
	"regexp"
	"strings"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// Slugify converts a title to its canonical URL slug. The slug is computed
// once at write time and stored with the row; nothing recomputes it on read.
//
// Rules:
//  1. Trim whitespace and lowercase
//  2. Replace spaces, underscores and slashes with dashes
//  3. Remove non-alphanumeric characters (except dashes)
//  4. Collapse multiple dashes
//  5. Trim leading/trailing dashes
//
// Total and idempotent: any input yields a string of [a-z0-9-] with no
// leading or trailing dash, and Slugify(Slugify(x)) == Slugify(x).
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

var nonUsernameRe = regexp.MustCompile(`[^a-z0-9]`)

// UsernameFromEmail derives a username candidate from the local part of an
// email address: lowercased and stripped to [a-z0-9]. Falls back to "user"
// when nothing survives.
func UsernameFromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	s := nonUsernameRe.ReplaceAllString(strings.ToLower(local), "")
	if s == "" {
		return "user"
	}
	return s
}

package services

import (
	"fmt"

	"github.com/buidlhub/buidlhub-backend/errs"
)

// ExistsFunc is a point lookup answering whether a candidate identifier is
// already taken within its scope (per-user for project slugs, global for
// usernames).
type ExistsFunc func(candidate string) (bool, error)

// maxConflictRetries bounds the insert-retry loop. The candidate search
// itself is unbounded; this only caps how often we re-resolve after losing
// an insert race to a concurrent writer.
const maxConflictRetries = 5

// ResolveUnique returns the first free identifier in the sequence base,
// base{sep}1, base{sep}2, ... for the scope probed by exists. Deterministic
// for a fixed store state.
func ResolveUnique(base, sep string, exists ExistsFunc) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%s%d", base, sep, n)
	}
}

// UniqueProjectSlug resolves a per-user unique project slug, suffixing
// "-1", "-2", ... on collision. An empty base (punctuation-only title)
// falls back to "project".
func UniqueProjectSlug(title string, exists ExistsFunc) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "project"
	}
	return ResolveUnique(base, "-", exists)
}

// UniqueUsername resolves a globally unique username, suffixing "1", "2",
// ... on collision.
func UniqueUsername(base string, exists ExistsFunc) (string, error) {
	if base == "" {
		base = "user"
	}
	return ResolveUnique(base, "", exists)
}

// InsertUnique resolves a free candidate and runs insert with it. The
// check-then-insert pair is not atomic, so a concurrent writer can win the
// race after the check passes; the unique constraint in the store turns
// that into a duplicate-key error and the loop re-resolves with the next
// suffix instead of surfacing a 500. Gives up after maxConflictRetries
// lost races.
func InsertUnique(base, sep string, exists ExistsFunc, insert func(candidate string) error) (string, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		candidate, err := ResolveUnique(base, sep, exists)
		if err != nil {
			return "", err
		}
		err = insert(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errs.IsDuplicateKey(err) {
			return "", err
		}
	}
	return "", errs.NewConflictError(fmt.Sprintf("could not claim a unique identifier for %q", base))
}

package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existsIn(taken map[string]bool) ExistsFunc {
	return func(candidate string) (bool, error) {
		return taken[candidate], nil
	}
}

func TestResolveUnique(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		sep      string
		taken    map[string]bool
		expected string
	}{
		{"free immediately", "alpha", "-", map[string]bool{}, "alpha"},
		{"one collision", "alpha", "-", map[string]bool{"alpha": true}, "alpha-1"},
		{"two collisions", "alpha", "-", map[string]bool{"alpha": true, "alpha-1": true}, "alpha-2"},
		{"username style", "alice", "", map[string]bool{"alice": true}, "alice1"},
		{"gap is not reused", "alpha", "-", map[string]bool{"alpha": true, "alpha-2": true}, "alpha-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolveUnique(tt.base, tt.sep, existsIn(tt.taken))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
			assert.False(t, tt.taken[result], "resolved candidate must not collide")
		})
	}
}

func TestResolveUniqueDeterministic(t *testing.T) {
	taken := map[string]bool{"alpha": true, "alpha-1": true}
	first, err := ResolveUnique("alpha", "-", existsIn(taken))
	require.NoError(t, err)
	second, err := ResolveUnique("alpha", "-", existsIn(taken))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveUniquePropagatesLookupError(t *testing.T) {
	boom := errors.New("store unavailable")
	_, err := ResolveUnique("alpha", "-", func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestUniqueProjectSlugFallsBackOnEmptyTitle(t *testing.T) {
	slug, err := UniqueProjectSlug("!!!", existsIn(map[string]bool{}))
	require.NoError(t, err)
	assert.Equal(t, "project", slug)
}

func TestInsertUniqueRetriesLostRace(t *testing.T) {
	// The store looks empty at check time, but "alpha" is claimed by a
	// concurrent writer before our insert lands. The loop must re-resolve
	// against the updated state and claim "alpha-1".
	stored := map[string]bool{}
	checked := map[string]bool{}

	exists := func(candidate string) (bool, error) {
		checked[candidate] = true
		return stored[candidate], nil
	}
	insert := func(candidate string) error {
		if candidate == "alpha" && !stored["alpha"] {
			stored["alpha"] = true // the rival wins the race
			return errors.New(`duplicate key value violates unique constraint "idx_project_user_slug"`)
		}
		stored[candidate] = true
		return nil
	}

	result, err := InsertUnique("alpha", "-", exists, insert)
	require.NoError(t, err)
	assert.Equal(t, "alpha-1", result)
	assert.True(t, checked["alpha"])
}

func TestInsertUniqueSurfacesNonConflictErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := InsertUnique("alpha", "-", existsIn(map[string]bool{}), func(string) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestInsertUniqueGivesUpAfterRepeatedConflicts(t *testing.T) {
	insert := func(string) error {
		return errors.New("duplicate key value violates unique constraint")
	}
	_, err := InsertUnique("alpha", "-", existsIn(map[string]bool{}), insert)
	require.Error(t, err)
}

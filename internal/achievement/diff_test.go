package achievement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffReturnsOnlyNewIDs(t *testing.T) {
	prev := []string{"first-stamp", "first-truth"}
	next := []string{"first-stamp", "first-truth", "rising-star", "hat-trick"}

	require.Equal(t, []string{"rising-star", "hat-trick"}, Diff(prev, next))
	require.Empty(t, Diff(next, next))
	require.Empty(t, Diff(next, prev))
}

func TestUnlockedIDsPreservesCatalogOrder(t *testing.T) {
	results := []StudentAchievement{
		{IsUnlocked: true},
		{IsUnlocked: false},
		{IsUnlocked: true},
	}
	results[0].ID = "first-stamp"
	results[1].ID = "rising-star"
	results[2].ID = "first-truth"

	require.Equal(t, []string{"first-stamp", "first-truth"}, UnlockedIDs(results))
}

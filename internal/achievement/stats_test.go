package achievement

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/passport-go-api/internal/catalog"
)

func TestStatsTalliesByValueAndSubject(t *testing.T) {
	signatures := []Signature{
		stamp(catalog.SubjectMath, catalog.ValueTruth),
		stamp(catalog.SubjectMath, catalog.ValueLove),
		stamp(catalog.SubjectScience, catalog.ValueTruth),
	}

	totals := Stats(signatures)
	require.Equal(t, 3, totals.Total)
	require.Equal(t, 2, totals.ByValue[catalog.ValueTruth])
	require.Equal(t, 1, totals.ByValue[catalog.ValueLove])
	require.Zero(t, totals.ByValue[catalog.ValuePeace])
	require.Equal(t, 2, totals.BySubject[catalog.SubjectMath])
	require.Equal(t, 1, totals.BySubject[catalog.SubjectScience])
}

func TestStatsEmptyInputStillListsEveryValue(t *testing.T) {
	totals := Stats(nil)
	require.Zero(t, totals.Total)
	require.Len(t, totals.ByValue, len(catalog.CoreValues))
	require.Empty(t, totals.BySubject)
}

package achievement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/passport-go-api/internal/catalog"
)

func TestHatTrickRequiresSingleDay(t *testing.T) {
	engine := NewEngine(nil)

	day := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	sameDay := []Signature{
		at(day.Add(1 * time.Hour)),
		at(day.Add(3 * time.Hour)),
		at(day.Add(6 * time.Hour)),
	}
	spread := []Signature{
		at(day),
		at(day.AddDate(0, 0, 1)),
		at(day.AddDate(0, 0, 2)),
	}

	unlocked := resultFor(t, engine.Evaluate(Input{Signatures: sameDay}), "hat-trick")
	require.True(t, unlocked.IsUnlocked)
	require.Equal(t, 1, unlocked.CurrentProgress)
	require.Equal(t, 1, unlocked.MaxProgress)

	locked := resultFor(t, engine.Evaluate(Input{Signatures: spread}), "hat-trick")
	require.False(t, locked.IsUnlocked)
	require.Zero(t, locked.CurrentProgress)
}

func TestMasterValueCountsDistinctSubjects(t *testing.T) {
	engine := NewEngine(nil)

	signatures := []Signature{
		stamp(catalog.SubjectMath, catalog.ValueTruth),
		stamp(catalog.SubjectMath, catalog.ValueTruth),
		stamp(catalog.SubjectScience, catalog.ValueTruth),
		stamp(catalog.SubjectScience, catalog.ValueLove),
	}

	master := resultFor(t, engine.Evaluate(Input{Signatures: signatures}), "master-truth")
	require.False(t, master.IsUnlocked)
	require.Equal(t, 2, master.CurrentProgress)
	require.Equal(t, len(catalog.Subjects), master.MaxProgress)
}

func TestMasterValueUnlocksAcrossAllSubjects(t *testing.T) {
	engine := NewEngine(nil)

	var signatures []Signature
	for _, subject := range catalog.Subjects {
		signatures = append(signatures, stamp(subject, catalog.ValuePeace))
	}

	master := resultFor(t, engine.Evaluate(Input{Signatures: signatures}), "master-peace")
	require.True(t, master.IsUnlocked)
	require.Equal(t, len(catalog.Subjects), master.CurrentProgress)
}

func TestSevaStarCountsLoveInServiceSettings(t *testing.T) {
	engine := NewEngine(nil)

	signatures := []Signature{
		stamp(catalog.SubjectPlayground, catalog.ValueLove),
		stamp(catalog.SubjectExcursions, catalog.ValueLove),
		stamp(catalog.SubjectPlayground, catalog.ValuePeace), // wrong value
		stamp(catalog.SubjectMath, catalog.ValueLove),        // wrong setting
	}

	seva := resultFor(t, engine.Evaluate(Input{Signatures: signatures}), "seva-star")
	require.False(t, seva.IsUnlocked)
	require.Equal(t, 2, seva.CurrentProgress)
	require.Equal(t, 5, seva.MaxProgress)
}

func TestValueExplorerCountsDistinctValues(t *testing.T) {
	engine := NewEngine(nil)

	signatures := []Signature{
		stamp(catalog.SubjectMath, catalog.ValueTruth),
		stamp(catalog.SubjectMath, catalog.ValueTruth),
		stamp(catalog.SubjectMath, catalog.ValueLove),
		stamp(catalog.SubjectMath, catalog.ValuePeace),
	}

	explorer := resultFor(t, engine.Evaluate(Input{Signatures: signatures}), "value-explorer")
	require.True(t, explorer.IsUnlocked)
	require.Equal(t, 3, explorer.CurrentProgress)
}

func TestSubValueRulesMatchExactTags(t *testing.T) {
	engine := NewEngine(nil)

	signatures := []Signature{
		tagged(catalog.SubjectMath, catalog.ValueLove, "Friendship"),
		tagged(catalog.SubjectArt, catalog.ValueLove, "Kindness"),
		tagged(catalog.SubjectArt, catalog.ValueLove, "friendship"), // case mismatch
		tagged(catalog.SubjectArt, catalog.ValuePeace, "Optimism"),
	}
	results := engine.Evaluate(Input{Signatures: signatures})

	friend := resultFor(t, results, "true-friend")
	require.True(t, friend.IsUnlocked)
	require.Equal(t, 2, friend.CurrentProgress)

	optimist := resultFor(t, results, "the-optimist")
	require.False(t, optimist.IsUnlocked)
	require.Equal(t, 1, optimist.CurrentProgress)
}

func TestHeadHeartHandScoresEachSettingOnce(t *testing.T) {
	engine := NewEngine(nil)

	partial := []Signature{
		stamp(catalog.SubjectMath, catalog.ValueTruth),    // academic
		stamp(catalog.SubjectEnglish, catalog.ValueTruth), // academic again
		stamp(catalog.SubjectSport, catalog.ValueLove),    // active
	}
	result := resultFor(t, engine.Evaluate(Input{Signatures: partial}), "head-heart-hand")
	require.False(t, result.IsUnlocked)
	require.Equal(t, 2, result.CurrentProgress)
	require.Equal(t, 3, result.MaxProgress)

	complete := append(partial, stamp(catalog.SubjectMusic, catalog.ValuePeace))
	result = resultFor(t, engine.Evaluate(Input{Signatures: complete}), "head-heart-hand")
	require.True(t, result.IsUnlocked)
}

func TestPlannerRulesUsePlannerItems(t *testing.T) {
	engine := NewEngine(nil)

	planner := []PlannerItem{
		{Category: "HOMEWORK", IsCompleted: true},
		{Category: "ASSIGNMENT", IsCompleted: false},
		{Category: "TASK", IsCompleted: true},
	}
	results := engine.Evaluate(Input{Planner: planner})

	first := resultFor(t, results, "planner-first")
	require.True(t, first.IsUnlocked)
	require.Equal(t, 3, first.CurrentProgress)

	ten := resultFor(t, results, "planner-10")
	require.False(t, ten.IsUnlocked)
	require.Equal(t, 3, ten.CurrentProgress)

	finisher := resultFor(t, results, "planner-complete-5")
	require.False(t, finisher.IsUnlocked)
	require.Equal(t, 2, finisher.CurrentProgress)
}

func TestRegisterOverridesBuiltinRule(t *testing.T) {
	engine := NewEngine(nil)
	engine.Register("hat-trick", func([]Signature, []PlannerItem) (int, int) {
		return 1, 1
	})

	result := resultFor(t, engine.Evaluate(Input{}), "hat-trick")
	require.True(t, result.IsUnlocked)
}

func at(ts time.Time) Signature {
	return Signature{Subject: catalog.SubjectAssembly, Value: catalog.ValuePeace, TeacherName: "Mr Adeyemi", AwardedAt: ts.UnixMilli()}
}

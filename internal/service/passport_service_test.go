package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/passport-go-api/internal/achievement"
	"github.com/noah-isme/passport-go-api/internal/catalog"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

func TestPassportEvaluationAndCaching(t *testing.T) {
	db := newServiceDB(t, "passport_caching")
	cache := newServiceRedis(t)

	svc := NewPassportService(
		repository.NewSignatureRepository(db),
		repository.NewClaimedRewardRepository(db),
		repository.NewPlannerRepository(db),
		repository.NewCustomRewardRepository(db),
		repository.NewStudentRepository(db),
		achievement.NewEngine(nil),
		nil,
		cache,
		time.Minute,
		zerolog.Nop(),
	)

	seedStudent(t, db, 1, "Aanya", "5")
	seedStamp(t, db, 1, catalog.SubjectMath, string(catalog.ValueTruth))

	ctx := context.Background()
	first, err := svc.GetPassport(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint(1), first.StudentID)
	require.Equal(t, 1, first.Stats.Total)
	require.Equal(t, 1, first.Stats.ByValue[string(catalog.ValueTruth)])
	// First load never reports fresh unlocks even though some unlocked.
	require.Empty(t, first.NewlyUnlocked)
	require.Positive(t, first.UnlockedCount)

	unlocked := map[string]bool{}
	for _, result := range first.Achievements {
		if result.IsUnlocked {
			unlocked[result.ID] = true
		}
	}
	require.True(t, unlocked["first-stamp"])
	require.True(t, unlocked["first-truth"])
	require.False(t, unlocked["rising-star"])

	// Stale cache: database changes do not show until invalidation.
	seedStamp(t, db, 1, catalog.SubjectArt, string(catalog.ValueLove))
	second, err := svc.GetPassport(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, first, second)

	svc.Invalidate(ctx, 1)
	third, err := svc.GetPassport(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, third.Stats.Total)
	require.Equal(t, []string{"first-love"}, third.NewlyUnlocked)
}

func TestPassportUnknownStudent(t *testing.T) {
	db := newServiceDB(t, "passport_unknown")
	cache := newServiceRedis(t)

	svc := NewPassportService(
		repository.NewSignatureRepository(db),
		repository.NewClaimedRewardRepository(db),
		repository.NewPlannerRepository(db),
		repository.NewCustomRewardRepository(db),
		repository.NewStudentRepository(db),
		achievement.NewEngine(nil),
		nil,
		cache,
		time.Minute,
		zerolog.Nop(),
	)

	_, err := svc.GetPassport(context.Background(), 42)
	require.Error(t, err)
}

func TestPassportGradeScopedCustomRewards(t *testing.T) {
	db := newServiceDB(t, "passport_grades")
	cache := newServiceRedis(t)

	svc := NewPassportService(
		repository.NewSignatureRepository(db),
		repository.NewClaimedRewardRepository(db),
		repository.NewPlannerRepository(db),
		repository.NewCustomRewardRepository(db),
		repository.NewStudentRepository(db),
		achievement.NewEngine(nil),
		nil,
		cache,
		time.Minute,
		zerolog.Nop(),
	)

	seedStudent(t, db, 1, "Aanya", "5")
	seedStudent(t, db, 2, "Ben", "6")

	reward := models.CustomReward{
		Slug:              "grade-five-hero",
		Title:             "Grade Five Hero",
		Reward:            "Hero Badge",
		Grades:            []string{"5"},
		CriteriaType:      string(catalog.EvalTotal),
		CriteriaThreshold: 1,
	}
	require.NoError(t, db.Create(&reward).Error)

	ctx := context.Background()
	inGrade, err := svc.EvaluateFor(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, findAchievement(inGrade, "grade-five-hero"))

	outOfGrade, err := svc.EvaluateFor(ctx, 2)
	require.NoError(t, err)
	require.Nil(t, findAchievement(outOfGrade, "grade-five-hero"))
}

func TestPassportStatsWithoutCache(t *testing.T) {
	db := newServiceDB(t, "passport_stats")
	cache := newServiceRedis(t)

	svc := NewPassportService(
		repository.NewSignatureRepository(db),
		repository.NewClaimedRewardRepository(db),
		repository.NewPlannerRepository(db),
		repository.NewCustomRewardRepository(db),
		repository.NewStudentRepository(db),
		achievement.NewEngine(nil),
		nil,
		cache,
		time.Minute,
		zerolog.Nop(),
	)

	seedStudent(t, db, 7, "Mika", "4")
	seedStamp(t, db, 7, catalog.SubjectScience, string(catalog.ValuePeace))
	seedStamp(t, db, 7, catalog.SubjectScience, string(catalog.ValuePeace))

	stats, err := svc.GetStats(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 2, stats.ByValue[string(catalog.ValuePeace)])
	require.Equal(t, 2, stats.BySubject[catalog.SubjectScience])
	// Every core value appears, zero-filled.
	require.Len(t, stats.ByValue, len(catalog.CoreValues))
}

func findAchievement(results []achievement.StudentAchievement, id string) *achievement.StudentAchievement {
	for i := range results {
		if results[i].ID == id {
			return &results[i]
		}
	}
	return nil
}

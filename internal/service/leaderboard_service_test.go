package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/achievement"
	"github.com/noah-isme/passport-go-api/internal/catalog"
	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

func newLeaderboardFixture(t *testing.T, dbName string) (LeaderboardService, *gorm.DB) {
	t.Helper()

	db := newServiceDB(t, dbName)
	cache := newServiceRedis(t)

	passports := NewPassportService(
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
	boards := NewLeaderboardService(
		repository.NewStudentRepository(db),
		repository.NewSignatureRepository(db),
		repository.NewQuizScoreRepository(db),
		passports,
		cache,
		time.Minute,
		zerolog.Nop(),
	)
	return boards, db
}

func TestLeaderboardRanksByTotal(t *testing.T) {
	svc, db := newLeaderboardFixture(t, "leaderboard_total")

	seedStudent(t, db, 1, "Aanya", "5")
	seedStudent(t, db, 2, "Ben", "5")
	seedStudent(t, db, 3, "Chloe", "6")
	seedStamp(t, db, 1, catalog.SubjectMath, string(catalog.ValueTruth))
	seedStamp(t, db, 1, catalog.SubjectArt, string(catalog.ValueLove))
	seedStamp(t, db, 2, catalog.SubjectMusic, string(catalog.ValuePeace))

	response, err := svc.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, dto.RankByTotal, response.Dimension)
	require.Empty(t, response.Value)
	require.Len(t, response.Entries, 3)

	require.Equal(t, uint(1), response.Entries[0].StudentID)
	require.Equal(t, 2, response.Entries[0].Total)
	require.Equal(t, uint(2), response.Entries[1].StudentID)
	require.Equal(t, uint(3), response.Entries[2].StudentID)
	require.Equal(t, 0, response.Entries[2].Total)
	for i, entry := range response.Entries {
		require.Equal(t, i+1, entry.Rank)
	}
}

func TestLeaderboardValueDimension(t *testing.T) {
	svc, db := newLeaderboardFixture(t, "leaderboard_value")

	seedStudent(t, db, 1, "Aanya", "5")
	seedStudent(t, db, 2, "Ben", "5")
	// Ben has the higher total, Aanya the more Truth stamps.
	seedStamp(t, db, 1, catalog.SubjectMath, string(catalog.ValueTruth))
	seedStamp(t, db, 1, catalog.SubjectScience, string(catalog.ValueTruth))
	seedStamp(t, db, 2, catalog.SubjectMath, string(catalog.ValueTruth))
	seedStamp(t, db, 2, catalog.SubjectArt, string(catalog.ValueLove))
	seedStamp(t, db, 2, catalog.SubjectMusic, string(catalog.ValueLove))

	response, err := svc.Leaderboard(context.Background(), "value:Truth")
	require.NoError(t, err)
	require.Equal(t, dto.RankByValue, response.Dimension)
	require.Equal(t, "Truth", response.Value)
	require.Equal(t, uint(1), response.Entries[0].StudentID)
	require.Equal(t, 2, response.Entries[0].ByValue["Truth"])
	require.Equal(t, uint(2), response.Entries[1].StudentID)
}

func TestLeaderboardTiesKeepRosterOrder(t *testing.T) {
	svc, db := newLeaderboardFixture(t, "leaderboard_ties")

	seedStudent(t, db, 1, "Aanya", "5")
	seedStudent(t, db, 2, "Ben", "5")
	seedStamp(t, db, 1, catalog.SubjectMath, string(catalog.ValueTruth))
	seedStamp(t, db, 2, catalog.SubjectArt, string(catalog.ValueLove))

	response, err := svc.Leaderboard(context.Background(), dto.RankByTotal)
	require.NoError(t, err)
	require.Equal(t, uint(1), response.Entries[0].StudentID)
	require.Equal(t, uint(2), response.Entries[1].StudentID)
	require.Equal(t, 1, response.Entries[0].Rank)
	require.Equal(t, 2, response.Entries[1].Rank)
}

func TestLeaderboardQuizDimension(t *testing.T) {
	svc, db := newLeaderboardFixture(t, "leaderboard_quiz")

	seedStudent(t, db, 1, "Aanya", "5")
	seedStudent(t, db, 2, "Ben", "5")
	quiz := repository.NewQuizScoreRepository(db)
	require.NoError(t, quiz.Upsert(context.Background(), &models.QuizScore{StudentID: 1, Score: 40}))
	require.NoError(t, quiz.Upsert(context.Background(), &models.QuizScore{StudentID: 2, Score: 85}))

	response, err := svc.Leaderboard(context.Background(), dto.RankByQuiz)
	require.NoError(t, err)
	require.Equal(t, dto.RankByQuiz, response.Dimension)
	require.Equal(t, uint(2), response.Entries[0].StudentID)
	require.Equal(t, 85, response.Entries[0].QuizScore)
	require.Equal(t, uint(1), response.Entries[1].StudentID)
}

func TestLeaderboardUnknownDimension(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, "leaderboard_unknown")

	_, err := svc.Leaderboard(context.Background(), "streaks")
	require.ErrorIs(t, err, ErrUnknownDimension)

	_, err = svc.Leaderboard(context.Background(), "value:Bravery")
	require.ErrorIs(t, err, ErrUnknownDimension)
}

func TestLeaderboardServesCachedRanking(t *testing.T) {
	svc, db := newLeaderboardFixture(t, "leaderboard_cache")

	seedStudent(t, db, 1, "Aanya", "5")
	seedStamp(t, db, 1, catalog.SubjectMath, string(catalog.ValueTruth))

	first, err := svc.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, 1, first.Entries[0].Total)

	// New stamps stay invisible until the cached ranking expires.
	seedStamp(t, db, 1, catalog.SubjectArt, string(catalog.ValueLove))
	second, err := svc.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, 1, second.Entries[0].Total)
}

func TestTeacherActivityOrdersByStampCount(t *testing.T) {
	svc, db := newLeaderboardFixture(t, "leaderboard_teachers")

	seedStudent(t, db, 1, "Aanya", "5")
	for i := 0; i < 3; i++ {
		seedStamp(t, db, 1, catalog.SubjectMath, string(catalog.ValueTruth))
	}
	require.NoError(t, db.Create(&models.Signature{
		StudentID:   1,
		TeacherName: "Mr Okafor",
		Subject:     catalog.SubjectArt,
		Value:       string(catalog.ValueLove),
		AwardedAt:   time.Now().UnixMilli(),
	}).Error)

	response, err := svc.TeacherActivity(context.Background())
	require.NoError(t, err)
	require.Len(t, response.Teachers, 2)
	require.Equal(t, "Ms Rivera", response.Teachers[0].TeacherName)
	require.EqualValues(t, 3, response.Teachers[0].StampCount)
	require.Equal(t, "Mr Okafor", response.Teachers[1].TeacherName)
	require.EqualValues(t, 1, response.Teachers[1].StampCount)
}

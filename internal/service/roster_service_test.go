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

func newRosterFixture(t *testing.T, dbName string) (RosterService, *gorm.DB) {
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
	activity := NewActivityService(repository.NewActivityLogRepository(db), zerolog.Nop())
	roster := NewRosterService(
		repository.NewStudentRepository(db),
		repository.NewTeacherRepository(db),
		repository.NewSignatureRepository(db),
		repository.NewClaimedRewardRepository(db),
		repository.NewQuizScoreRepository(db),
		newValidator(),
		activity,
		passports,
		zerolog.Nop(),
	)
	return roster, db
}

func TestStudentRosterLifecycle(t *testing.T) {
	svc, _ := newRosterFixture(t, "roster_students")

	ctx := context.Background()
	admin := Actor{ID: 1, Role: "admin", Name: "Principal Shah"}

	created, err := svc.CreateStudent(ctx, admin, dto.UpsertStudentRequest{
		Name:  "Aanya",
		Email: "aanya@school.test",
		Grade: "5",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// The roster cache refreshes on every mutation, so reads see the
	// change immediately.
	updated, err := svc.UpdateStudent(ctx, admin, created.ID, dto.UpsertStudentRequest{
		Name:  "Aanya R",
		Email: "aanya@school.test",
		Grade: "6",
	})
	require.NoError(t, err)
	require.Equal(t, "Aanya R", updated.Name)

	students, err := svc.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "Aanya R", students[0].Name)
	require.Equal(t, "6", students[0].Grade)

	require.NoError(t, svc.DeleteStudent(ctx, admin, created.ID))
	students, err = svc.Students(ctx)
	require.NoError(t, err)
	require.Empty(t, students)

	require.ErrorIs(t, svc.DeleteStudent(ctx, admin, created.ID), ErrStudentNotFound)
	_, err = svc.UpdateStudent(ctx, admin, created.ID, dto.UpsertStudentRequest{
		Name:  "Ghost",
		Email: "ghost@school.test",
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestTeacherRosterLifecycle(t *testing.T) {
	svc, _ := newRosterFixture(t, "roster_teachers")

	ctx := context.Background()
	admin := Actor{ID: 1, Role: "admin", Name: "Principal Shah"}

	created, err := svc.CreateTeacher(ctx, admin, dto.UpsertTeacherRequest{
		Name:    "Ms Rivera",
		Email:   "rivera@school.test",
		Subject: catalog.SubjectMath,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTeacher(ctx, admin, created.ID, dto.UpsertTeacherRequest{
		Name:    "Ms Rivera",
		Email:   "rivera@school.test",
		Subject: catalog.SubjectScience,
	})
	require.NoError(t, err)
	require.Equal(t, catalog.SubjectScience, updated.Subject)

	teachers, err := svc.Teachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	require.Equal(t, catalog.SubjectScience, teachers[0].Subject)

	require.NoError(t, svc.DeleteTeacher(ctx, admin, created.ID))
	require.ErrorIs(t, svc.DeleteTeacher(ctx, admin, created.ID), ErrTeacherNotFound)
}

func TestRosterValidation(t *testing.T) {
	svc, _ := newRosterFixture(t, "roster_validation")

	ctx := context.Background()
	admin := Actor{ID: 1, Role: "admin"}

	_, err := svc.CreateStudent(ctx, admin, dto.UpsertStudentRequest{Name: "No Email"})
	require.Error(t, err)

	_, err = svc.CreateTeacher(ctx, admin, dto.UpsertTeacherRequest{Email: "not-an-email", Name: "Bad"})
	require.Error(t, err)
}

func TestResetStudentProgress(t *testing.T) {
	svc, db := newRosterFixture(t, "roster_reset")

	ctx := context.Background()
	admin := Actor{ID: 1, Role: "admin", Name: "Principal Shah"}

	seedStudent(t, db, 7, "Ben", "5")
	seedStamp(t, db, 7, catalog.SubjectMath, string(catalog.ValueTruth))
	seedStamp(t, db, 7, catalog.SubjectArt, string(catalog.ValueLove))
	require.NoError(t, db.Create(&models.ClaimedReward{
		StudentID:     7,
		AchievementID: "first-stamp",
		ClaimedBy:     "Ms Rivera",
	}).Error)

	require.NoError(t, svc.ResetStudentProgress(ctx, admin, 7))

	var signatureCount, claimCount int64
	require.NoError(t, db.Model(&models.Signature{}).Where("student_id = ?", 7).Count(&signatureCount).Error)
	require.NoError(t, db.Model(&models.ClaimedReward{}).Where("student_id = ?", 7).Count(&claimCount).Error)
	require.Zero(t, signatureCount)
	require.Zero(t, claimCount)

	require.ErrorIs(t, svc.ResetStudentProgress(ctx, admin, 99), ErrStudentNotFound)
}

func TestUpsertQuizScore(t *testing.T) {
	svc, db := newRosterFixture(t, "roster_quiz")

	ctx := context.Background()
	admin := Actor{ID: 1, Role: "admin"}

	seedStudent(t, db, 3, "Chloe", "6")
	require.NoError(t, svc.UpsertQuizScore(ctx, admin, dto.UpsertQuizScoreRequest{StudentID: 3, Score: 40}))
	require.NoError(t, svc.UpsertQuizScore(ctx, admin, dto.UpsertQuizScoreRequest{StudentID: 3, Score: 90}))

	scores, err := repository.NewQuizScoreRepository(db).ScoresByStudent(ctx)
	require.NoError(t, err)
	require.Equal(t, 90, scores[3])

	require.Error(t, svc.UpsertQuizScore(ctx, admin, dto.UpsertQuizScoreRequest{Score: 10}))
}

func TestRosterMutationsAreAudited(t *testing.T) {
	svc, db := newRosterFixture(t, "roster_audit")

	ctx := context.Background()
	admin := Actor{ID: 1, Role: "admin", Name: "Principal Shah"}

	_, err := svc.CreateStudent(ctx, admin, dto.UpsertStudentRequest{
		Name:  "Aanya",
		Email: "aanya@school.test",
		Grade: "5",
	})
	require.NoError(t, err)

	var logs []models.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, "student.create", logs[0].Action)
	require.Equal(t, "student", logs[0].EntityType)
	require.Equal(t, uint(1), logs[0].ActorID)
}

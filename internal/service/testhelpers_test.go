package service

import (
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/models"
)

// newServiceDB opens a named in-memory database so concurrent tests do not
// share state.
func newServiceDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.QuizScore{},
		&models.Signature{},
		&models.Nomination{},
		&models.PlannerItem{},
		&models.ClaimedReward{},
		&models.CustomReward{},
		&models.ActivityLog{},
		&models.Notification{},
	))
	return db
}

func newServiceRedis(t *testing.T) *redis.Client {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	return redis.NewClient(&redis.Options{Addr: mini.Addr()})
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func seedStudent(t *testing.T, db *gorm.DB, id uint, name, grade string) models.Student {
	t.Helper()

	student := models.Student{
		ID:    id,
		Name:  name,
		Email: fmt.Sprintf("%s-%d@school.test", grade, id),
		Grade: grade,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedStamp(t *testing.T, db *gorm.DB, studentID uint, subject, value string) models.Signature {
	t.Helper()

	signature := models.Signature{
		StudentID:   studentID,
		TeacherName: "Ms Rivera",
		Subject:     subject,
		Value:       value,
		AwardedAt:   time.Now().UnixMilli(),
	}
	require.NoError(t, db.Create(&signature).Error)
	return signature
}

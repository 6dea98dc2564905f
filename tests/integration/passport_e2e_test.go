package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/achievement"
	"github.com/noah-isme/passport-go-api/internal/catalog"
	"github.com/noah-isme/passport-go-api/internal/config"
	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/handler"
	"github.com/noah-isme/passport-go-api/internal/middleware"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
	"github.com/noah-isme/passport-go-api/internal/router"
	"github.com/noah-isme/passport-go-api/internal/service"
)

func setupPassportApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:passport_e2e?mode=memory&cache=shared"), &gorm.Config{})
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

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)
	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	quizRepo := repository.NewQuizScoreRepository(db)
	signatureRepo := repository.NewSignatureRepository(db)
	nominationRepo := repository.NewNominationRepository(db)
	plannerRepo := repository.NewPlannerRepository(db)
	claimRepo := repository.NewClaimedRewardRepository(db)
	customRewardRepo := repository.NewCustomRewardRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	passportService := service.NewPassportService(signatureRepo, claimRepo, plannerRepo, customRewardRepo, studentRepo, achievement.NewEngine(nil), nil, cache, time.Minute, logger)
	signatureService := service.NewSignatureService(signatureRepo, studentRepo, validate, activityService, passportService, logger)
	nominationService := service.NewNominationService(nominationRepo, signatureRepo, studentRepo, validate, activityService, passportService, nil, logger)
	plannerService := service.NewPlannerService(plannerRepo, validate, passportService, logger)
	rewardService := service.NewRewardService(customRewardRepo, claimRepo, studentRepo, passportService, validate, activityService, passportService, nil, logger)
	leaderboardService := service.NewLeaderboardService(studentRepo, signatureRepo, quizRepo, passportService, cache, time.Minute, logger)
	rosterService := service.NewRosterService(studentRepo, teacherRepo, signatureRepo, claimRepo, quizRepo, validate, activityService, passportService, logger)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})

	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		PassportHandler:    handler.NewPassportHandler(passportService, logger),
		SignatureHandler:   handler.NewSignatureHandler(signatureService, logger),
		NominationHandler:  handler.NewNominationHandler(nominationService, logger),
		PlannerHandler:     handler.NewPlannerHandler(plannerService, logger),
		RewardHandler:      handler.NewRewardHandler(rewardService, logger),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService, logger),
		AdminHandler:       handler.NewAdminHandler(rosterService, activityService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			switch {
			case strings.HasPrefix(c.Path(), "/api/v2/admin"):
				c.Locals("user_id", uint(9001))
				c.Locals("user_role", "admin")
				c.Locals("user_name", "Principal Shah")
			case strings.HasPrefix(c.Path(), "/api/v2/teacher"):
				c.Locals("user_id", uint(30))
				c.Locals("user_role", "teacher")
				c.Locals("user_name", "Mr Okafor")
			default:
				c.Locals("user_id", uint(1))
				c.Locals("user_role", "student")
			}
			return c.Next()
		},
	})

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response, target *T) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target))
}

func TestPassportEndToEndFlow(t *testing.T) {
	app := setupPassportApp(t)

	// Step 1: admin enrols a student
	res := postJSON(t, app, "/api/v2/admin/students", map[string]interface{}{
		"name":  "Aanya",
		"email": "aanya@school.test",
		"grade": "5",
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var studentResp struct {
		Success bool                `json:"success"`
		Data    dto.StudentResponse `json:"data"`
	}
	decode(t, res, &studentResp)
	require.True(t, studentResp.Success)
	require.Equal(t, uint(1), studentResp.Data.ID)

	// Step 2: teacher awards a stamp
	res = postJSON(t, app, "/api/v2/teacher/signatures", map[string]interface{}{
		"student_id": 1,
		"subject":    catalog.SubjectMath,
		"value":      "Truth",
		"note":       "Owned up to a mistake",
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var signatureResp struct {
		Success bool                  `json:"success"`
		Data    dto.SignatureResponse `json:"data"`
	}
	decode(t, res, &signatureResp)
	require.True(t, signatureResp.Success)
	require.Equal(t, "Mr Okafor", signatureResp.Data.TeacherName)

	// Step 3: student reads their evaluated passport
	res = getJSON(t, app, "/api/v2/student/passport")
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var passportResp struct {
		Success bool                 `json:"success"`
		Data    dto.PassportResponse `json:"data"`
	}
	decode(t, res, &passportResp)
	require.True(t, passportResp.Success)
	require.Equal(t, 1, passportResp.Data.Stats.Total)
	require.Empty(t, passportResp.Data.NewlyUnlocked)

	var firstStamp *achievement.StudentAchievement
	for i := range passportResp.Data.Achievements {
		if passportResp.Data.Achievements[i].ID == "first-stamp" {
			firstStamp = &passportResp.Data.Achievements[i]
		}
	}
	require.NotNil(t, firstStamp)
	require.True(t, firstStamp.IsUnlocked)
	require.False(t, firstStamp.IsClaimed)

	// Step 4: teacher sees the unlocked reward in the hand-out queue
	res = getJSON(t, app, "/api/v2/teacher/rewards/pending")
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var pendingResp struct {
		Success bool                        `json:"success"`
		Data    []dto.PendingRewardResponse `json:"data"`
	}
	decode(t, res, &pendingResp)
	require.True(t, pendingResp.Success)
	require.Len(t, pendingResp.Data, 1)
	require.Equal(t, "first-stamp", pendingResp.Data[0].AchievementID)
	require.Equal(t, "Passport Sticker", pendingResp.Data[0].Reward)

	// Step 5: teacher hands out the reward; a second claim conflicts
	claim := map[string]interface{}{"student_id": 1, "achievement_id": "first-stamp"}
	res = postJSON(t, app, "/api/v2/teacher/rewards/claim", claim)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	res.Body.Close()

	res = postJSON(t, app, "/api/v2/teacher/rewards/claim", claim)
	require.Equal(t, fiber.StatusConflict, res.StatusCode)
	res.Body.Close()

	// Step 6: leaderboard ranks the roster
	res = getJSON(t, app, "/api/v2/student/leaderboard")
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var boardResp struct {
		Success bool                    `json:"success"`
		Data    dto.LeaderboardResponse `json:"data"`
	}
	decode(t, res, &boardResp)
	require.True(t, boardResp.Success)
	require.Len(t, boardResp.Data.Entries, 1)
	require.Equal(t, 1, boardResp.Data.Entries[0].Rank)
	require.Equal(t, 1, boardResp.Data.Entries[0].Total)

	// Step 7: teacher analytics reflect the single award
	res = getJSON(t, app, "/api/v2/teacher/analytics/teachers")
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var activityResp struct {
		Success bool                        `json:"success"`
		Data    dto.TeacherActivityResponse `json:"data"`
	}
	decode(t, res, &activityResp)
	require.True(t, activityResp.Success)
	require.Len(t, activityResp.Data.Teachers, 1)
	require.Equal(t, "Mr Okafor", activityResp.Data.Teachers[0].TeacherName)
	require.EqualValues(t, 1, activityResp.Data.Teachers[0].StampCount)

	// Step 8: the audit trail recorded the whole flow
	res = getJSON(t, app, "/api/v2/admin/activity")
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var auditResp struct {
		Success bool                     `json:"success"`
		Data    dto.ActivityListResponse `json:"data"`
	}
	decode(t, res, &auditResp)
	require.True(t, auditResp.Success)

	actions := make([]string, 0, len(auditResp.Data.Entries))
	for _, entry := range auditResp.Data.Entries {
		actions = append(actions, entry.Action)
	}
	require.Contains(t, actions, "student.create")
	require.Contains(t, actions, "signature.award")
	require.Contains(t, actions, "reward.claim")
}

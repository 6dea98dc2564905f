package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/service"
	"github.com/noah-isme/passport-go-api/internal/utils"
)

// LeaderboardHandler exposes class ranking and teacher activity endpoints.
type LeaderboardHandler struct {
	service service.LeaderboardService
	logger  zerolog.Logger
}

// NewLeaderboardHandler constructs the handler.
func NewLeaderboardHandler(service service.LeaderboardService, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		logger:  logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register attaches the leaderboard route.
func (h *LeaderboardHandler) Register(router fiber.Router) {
	router.Get("/leaderboard", h.leaderboard)
}

// RegisterAnalytics attaches the teacher analytics route.
func (h *LeaderboardHandler) RegisterAnalytics(router fiber.Router) {
	router.Get("/analytics/teachers", h.teacherActivity)
}

func (h *LeaderboardHandler) leaderboard(c *fiber.Ctx) error {
	dimension := strings.TrimSpace(c.Query("by"))

	leaderboard, err := h.service.Leaderboard(c.Context(), dimension)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDimension) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Str("dimension", dimension).Msg("failed to build leaderboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build leaderboard")
	}

	return utils.SendSuccess(c, "leaderboard retrieved", leaderboard)
}

func (h *LeaderboardHandler) teacherActivity(c *fiber.Ctx) error {
	activity, err := h.service.TeacherActivity(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build teacher activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build teacher activity")
	}

	return utils.SendSuccess(c, "teacher activity retrieved", activity)
}

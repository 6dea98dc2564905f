package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/service"
	"github.com/noah-isme/passport-go-api/internal/utils"
)

// PassportHandler exposes the student passport and stats endpoints.
type PassportHandler struct {
	service service.PassportService
	logger  zerolog.Logger
}

// NewPassportHandler creates a new handler instance.
func NewPassportHandler(service service.PassportService, logger zerolog.Logger) *PassportHandler {
	return &PassportHandler{
		service: service,
		logger:  logger.With().Str("component", "passport_handler").Logger(),
	}
}

// Register attaches the passport endpoints.
func (h *PassportHandler) Register(router fiber.Router) {
	router.Get("/passport", h.getPassport)
	router.Get("/stats", h.getStats)
}

func (h *PassportHandler) getPassport(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	passport, err := h.service.GetPassport(c.Context(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("failed to load passport")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load passport")
	}

	return utils.SendSuccess(c, "passport retrieved", passport)
}

func (h *PassportHandler) getStats(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	stats, err := h.service.GetStats(c.Context(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("failed to load stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load stats")
	}

	return utils.SendSuccess(c, "stats retrieved", stats)
}

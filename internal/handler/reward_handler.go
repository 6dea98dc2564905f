package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/service"
	"github.com/noah-isme/passport-go-api/internal/utils"
)

// RewardHandler wires the teacher-facing reward endpoints.
type RewardHandler struct {
	service service.RewardService
	logger  zerolog.Logger
}

// NewRewardHandler constructs the handler.
func NewRewardHandler(service service.RewardService, logger zerolog.Logger) *RewardHandler {
	return &RewardHandler{
		service: service,
		logger:  logger.With().Str("component", "reward_handler").Logger(),
	}
}

// Register attaches the reward routes to the router group.
func (h *RewardHandler) Register(router fiber.Router) {
	router.Get("/custom", h.listCustom)
	router.Post("/custom", h.createCustom)
	router.Delete("/custom/:id", h.deleteCustom)
	router.Get("/pending", h.pending)
	router.Post("/claim", h.claim)
}

func (h *RewardHandler) listCustom(c *fiber.Ctx) error {
	rewards, err := h.service.ListCustomRewards(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list custom rewards")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list custom rewards")
	}

	return utils.SendSuccess(c, "custom rewards retrieved", rewards)
}

func (h *RewardHandler) createCustom(c *fiber.Ctx) error {
	var payload dto.CreateCustomRewardRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	reward, err := h.service.CreateCustomReward(c.Context(), actor, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRewardIDTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUnknownValue), errors.Is(err, service.ErrUnknownSubject), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create custom reward")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create custom reward")
		}
	}

	return utils.SendSuccess(c, "custom reward created", reward)
}

func (h *RewardHandler) deleteCustom(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := actorFromContext(c)
	if err := h.service.DeleteCustomReward(c.Context(), actor, id); err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "custom reward not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete custom reward")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete custom reward")
	}

	return utils.SendSuccess(c, "custom reward deleted", fiber.Map{"id": id})
}

func (h *RewardHandler) pending(c *fiber.Ctx) error {
	pending, err := h.service.PendingRewards(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build pending reward queue")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build pending reward queue")
	}

	return utils.SendSuccess(c, "pending rewards retrieved", pending)
}

func (h *RewardHandler) claim(c *fiber.Ctx) error {
	var payload dto.ClaimRewardRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	if err := h.service.Claim(c.Context(), actor, payload); err != nil {
		switch {
		case errors.Is(err, service.ErrAchievementUnknown):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAchievementLocked), errors.Is(err, service.ErrAlreadyClaimed):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to claim reward")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to claim reward")
		}
	}

	return utils.SendSuccess(c, "reward claimed", fiber.Map{
		"student_id":     payload.StudentID,
		"achievement_id": payload.AchievementID,
	})
}

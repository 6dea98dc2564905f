package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/service"
	"github.com/noah-isme/passport-go-api/internal/utils"
)

// NominationHandler wires the student-facing nomination endpoints.
type NominationHandler struct {
	service service.NominationService
	logger  zerolog.Logger
}

// NewNominationHandler constructs the handler.
func NewNominationHandler(service service.NominationService, logger zerolog.Logger) *NominationHandler {
	return &NominationHandler{
		service: service,
		logger:  logger.With().Str("component", "nomination_handler").Logger(),
	}
}

// Register attaches the student nomination routes.
func (h *NominationHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/mine", h.listMine)
}

// RegisterReview attaches the teacher review routes.
func (h *NominationHandler) RegisterReview(router fiber.Router) {
	router.Get("/pending", h.listPending)
	router.Patch("/:id/review", h.review)
}

func (h *NominationHandler) create(c *fiber.Ctx) error {
	nominatorID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.CreateNominationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	nomination, err := h.service.Create(c.Context(), nominatorID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrUnknownValue), errors.Is(err, service.ErrUnknownSubject), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create nomination")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create nomination")
		}
	}

	return utils.SendSuccess(c, "nomination submitted", nomination)
}

func (h *NominationHandler) listMine(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	nominations, err := h.service.ListMine(c.Context(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list nominations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list nominations")
	}

	return utils.SendSuccess(c, "nominations retrieved", nominations)
}

func (h *NominationHandler) listPending(c *fiber.Ctx) error {
	nominations, err := h.service.ListPending(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list pending nominations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list pending nominations")
	}

	return utils.SendSuccess(c, "pending nominations retrieved", nominations)
}

func (h *NominationHandler) review(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ReviewNominationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	nomination, err := h.service.Review(c.Context(), actor, id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNominationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "nomination not found")
		case errors.Is(err, service.ErrNominationAlreadyReviewed):
			return utils.SendError(c, fiber.StatusConflict, "nomination already reviewed")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to review nomination")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to review nomination")
		}
	}

	return utils.SendSuccess(c, "nomination reviewed", nomination)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/service"
	"github.com/noah-isme/passport-go-api/internal/utils"
)

// SignatureHandler wires the teacher signature endpoints.
type SignatureHandler struct {
	service service.SignatureService
	logger  zerolog.Logger
}

// NewSignatureHandler constructs the handler.
func NewSignatureHandler(service service.SignatureService, logger zerolog.Logger) *SignatureHandler {
	return &SignatureHandler{
		service: service,
		logger:  logger.With().Str("component", "signature_handler").Logger(),
	}
}

// Register attaches the signature routes to the router group.
func (h *SignatureHandler) Register(router fiber.Router) {
	router.Post("", h.award)
	router.Get("/students/:id", h.listByStudent)
}

func (h *SignatureHandler) award(c *fiber.Ctx) error {
	var payload dto.AwardSignatureRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	signature, err := h.service.Award(c.Context(), actor, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrUnknownValue), errors.Is(err, service.ErrUnknownSubject), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to award signature")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to award signature")
		}
	}

	return utils.SendSuccess(c, "signature awarded", signature)
}

func (h *SignatureHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	signatures, err := h.service.ListByStudent(c.Context(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list signatures")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list signatures")
	}

	return utils.SendSuccess(c, "signatures retrieved", signatures)
}

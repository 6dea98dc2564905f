package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/service"
	"github.com/noah-isme/passport-go-api/internal/utils"
)

// PlannerHandler wires the student planner endpoints.
type PlannerHandler struct {
	service service.PlannerService
	logger  zerolog.Logger
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(service service.PlannerService, logger zerolog.Logger) *PlannerHandler {
	return &PlannerHandler{
		service: service,
		logger:  logger.With().Str("component", "planner_handler").Logger(),
	}
}

// Register attaches the planner routes to the router group.
func (h *PlannerHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *PlannerHandler) list(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	items, err := h.service.List(c.Context(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list planner items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list planner items")
	}

	return utils.SendSuccess(c, "planner items retrieved", items)
}

func (h *PlannerHandler) create(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.CreatePlannerItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Create(c.Context(), studentID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create planner item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create planner item")
	}

	return utils.SendSuccess(c, "planner item created", item)
}

func (h *PlannerHandler) update(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	itemID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.UpdatePlannerItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Update(c.Context(), studentID, itemID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlannerItemNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "planner item not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update planner item")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update planner item")
		}
	}

	return utils.SendSuccess(c, "planner item updated", item)
}

func (h *PlannerHandler) delete(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	itemID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), studentID, itemID); err != nil {
		if errors.Is(err, service.ErrPlannerItemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "planner item not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete planner item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete planner item")
	}

	return utils.SendSuccess(c, "planner item deleted", fiber.Map{"id": itemID})
}

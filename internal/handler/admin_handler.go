package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/service"
	"github.com/noah-isme/passport-go-api/internal/utils"
)

// AdminHandler wires roster management, progress resets, quiz score imports
// and the audit trail.
type AdminHandler struct {
	roster   service.RosterService
	activity service.ActivityService
	logger   zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(roster service.RosterService, activity service.ActivityService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		roster:   roster,
		activity: activity,
		logger:   logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the admin routes to the router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/students", h.listStudents)
	router.Post("/students", h.createStudent)
	router.Put("/students/:id", h.updateStudent)
	router.Delete("/students/:id", h.deleteStudent)
	router.Post("/students/:id/reset", h.resetStudent)
	router.Get("/teachers", h.listTeachers)
	router.Post("/teachers", h.createTeacher)
	router.Put("/teachers/:id", h.updateTeacher)
	router.Delete("/teachers/:id", h.deleteTeacher)
	router.Put("/quiz-scores", h.upsertQuizScore)
	router.Get("/activity", h.listActivity)
}

func (h *AdminHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.roster.Students(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}
	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *AdminHandler) createStudent(c *fiber.Ctx) error {
	var payload dto.UpsertStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.roster.CreateStudent(c.Context(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create student")
	}

	return utils.SendSuccess(c, "student created", student)
}

func (h *AdminHandler) updateStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.UpsertStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.roster.UpdateStudent(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update student")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update student")
		}
	}

	return utils.SendSuccess(c, "student updated", student)
}

func (h *AdminHandler) deleteStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.roster.DeleteStudent(c.Context(), actorFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete student")
	}

	return utils.SendSuccess(c, "student deleted", fiber.Map{"id": id})
}

func (h *AdminHandler) resetStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.roster.ResetStudentProgress(c.Context(), actorFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to reset student progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to reset student progress")
	}

	return utils.SendSuccess(c, "student progress reset", fiber.Map{"id": id})
}

func (h *AdminHandler) listTeachers(c *fiber.Ctx) error {
	teachers, err := h.roster.Teachers(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list teachers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list teachers")
	}
	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *AdminHandler) createTeacher(c *fiber.Ctx) error {
	var payload dto.UpsertTeacherRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	teacher, err := h.roster.CreateTeacher(c.Context(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create teacher")
	}

	return utils.SendSuccess(c, "teacher created", teacher)
}

func (h *AdminHandler) updateTeacher(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.UpsertTeacherRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	teacher, err := h.roster.UpdateTeacher(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeacherNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update teacher")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update teacher")
		}
	}

	return utils.SendSuccess(c, "teacher updated", teacher)
}

func (h *AdminHandler) deleteTeacher(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.roster.DeleteTeacher(c.Context(), actorFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete teacher")
	}

	return utils.SendSuccess(c, "teacher deleted", fiber.Map{"id": id})
}

func (h *AdminHandler) upsertQuizScore(c *fiber.Ctx) error {
	var payload dto.UpsertQuizScoreRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.roster.UpsertQuizScore(c.Context(), actorFromContext(c), payload); err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to upsert quiz score")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to upsert quiz score")
	}

	return utils.SendSuccess(c, "quiz score recorded", fiber.Map{"student_id": payload.StudentID})
}

func (h *AdminHandler) listActivity(c *fiber.Ctx) error {
	var req dto.ActivityListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query")
	}

	activity, err := h.activity.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity")
	}

	return utils.SendSuccess(c, "activity retrieved", activity)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/catalog"
	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

// NominationService handles self and peer stamp nominations and their review.
type NominationService interface {
	Create(ctx context.Context, nominatorID uint, req dto.CreateNominationRequest) (dto.NominationResponse, error)
	ListMine(ctx context.Context, studentID uint) ([]dto.NominationResponse, error)
	ListPending(ctx context.Context) ([]dto.NominationResponse, error)
	Review(ctx context.Context, actor Actor, nominationID uint, req dto.ReviewNominationRequest) (dto.NominationResponse, error)
}

type nominationService struct {
	nominations repository.NominationRepository
	signatures  repository.SignatureRepository
	students    repository.StudentRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	activity    ActivityRecorder
	invalidator PassportInvalidator
	notifier    NotificationService
	logger      zerolog.Logger
	now         func() time.Time
}

// NewNominationService constructs the nomination service.
func NewNominationService(
	nominations repository.NominationRepository,
	signatures repository.SignatureRepository,
	students repository.StudentRepository,
	validate *validator.Validate,
	activity ActivityRecorder,
	invalidator PassportInvalidator,
	notifier NotificationService,
	logger zerolog.Logger,
) NominationService {
	return &nominationService{
		nominations: nominations,
		signatures:  signatures,
		students:    students,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		activity:    activity,
		invalidator: invalidator,
		notifier:    notifier,
		logger:      logger.With().Str("component", "nomination_service").Logger(),
		now:         time.Now,
	}
}

func (s *nominationService) Create(ctx context.Context, nominatorID uint, req dto.CreateNominationRequest) (dto.NominationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.NominationResponse{}, err
	}
	if !catalog.IsCoreValue(req.Value) {
		return dto.NominationResponse{}, fmt.Errorf("%w: %q", ErrUnknownValue, req.Value)
	}
	if !catalog.IsSubject(req.Subject) {
		return dto.NominationResponse{}, fmt.Errorf("%w: %q", ErrUnknownSubject, req.Subject)
	}

	if _, err := s.students.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NominationResponse{}, ErrStudentNotFound
		}
		return dto.NominationResponse{}, err
	}

	nomination := models.Nomination{
		StudentID:     req.StudentID,
		NominatedByID: nominatorID,
		Subject:       req.Subject,
		Value:         req.Value,
		SubValue:      strings.TrimSpace(req.SubValue),
		Message:       strings.TrimSpace(s.sanitizer.Sanitize(req.Message)),
		Status:        models.NominationPending,
	}
	if err := s.nominations.Create(ctx, &nomination); err != nil {
		return dto.NominationResponse{}, err
	}

	return newNominationResponse(nomination), nil
}

func (s *nominationService) ListMine(ctx context.Context, studentID uint) ([]dto.NominationResponse, error) {
	nominations, err := s.nominations.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return newNominationResponses(nominations), nil
}

func (s *nominationService) ListPending(ctx context.Context) ([]dto.NominationResponse, error) {
	nominations, err := s.nominations.ListByStatus(ctx, models.NominationPending)
	if err != nil {
		return nil, err
	}
	return newNominationResponses(nominations), nil
}

// Review resolves a pending nomination. Approval converts it 1:1 into a
// signature credited to the reviewing teacher.
func (s *nominationService) Review(ctx context.Context, actor Actor, nominationID uint, req dto.ReviewNominationRequest) (dto.NominationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.NominationResponse{}, err
	}

	nomination, err := s.nominations.GetByID(ctx, nominationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NominationResponse{}, ErrNominationNotFound
		}
		return dto.NominationResponse{}, err
	}
	if nomination.Status != models.NominationPending {
		return dto.NominationResponse{}, ErrNominationAlreadyReviewed
	}

	nomination.Status = req.Status
	nomination.ReviewedBy = actor.Name
	if err := s.nominations.Update(ctx, &nomination); err != nil {
		return dto.NominationResponse{}, err
	}

	if req.Status == models.NominationApproved {
		signature := models.Signature{
			StudentID:   nomination.StudentID,
			TeacherName: actor.Name,
			Subject:     nomination.Subject,
			Value:       nomination.Value,
			SubValue:    nomination.SubValue,
			Note:        nomination.Message,
			AwardedAt:   s.now().UnixMilli(),
		}
		if err := s.signatures.Create(ctx, &signature); err != nil {
			s.logger.Error().Err(err).Uint("nomination_id", nominationID).Msg("failed to convert approved nomination")
			return dto.NominationResponse{}, err
		}
		s.invalidator.Invalidate(ctx, nomination.StudentID)
	}

	if err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "nomination." + strings.ToLower(req.Status),
		EntityType: "nomination",
		EntityID:   &nomination.ID,
		Metadata: map[string]interface{}{
			"student_id": nomination.StudentID,
			"value":      nomination.Value,
		},
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to audit nomination review")
	}

	if s.notifier != nil {
		userID := fmt.Sprintf("student:%d", nomination.StudentID)
		message := fmt.Sprintf("Your nomination for %s was %s", nomination.Value, strings.ToLower(req.Status))
		if _, err := s.notifier.Publish(ctx, userID, NotificationNominationReviewed, message); err != nil {
			s.logger.Warn().Err(err).Msg("failed to emit nomination review notification")
		}
	}

	return newNominationResponse(nomination), nil
}

func newNominationResponse(nomination models.Nomination) dto.NominationResponse {
	return dto.NominationResponse{
		ID:            nomination.ID,
		StudentID:     nomination.StudentID,
		NominatedByID: nomination.NominatedByID,
		Subject:       nomination.Subject,
		Value:         nomination.Value,
		SubValue:      nomination.SubValue,
		Message:       nomination.Message,
		Status:        nomination.Status,
		ReviewedBy:    nomination.ReviewedBy,
		CreatedAt:     nomination.CreatedAt,
	}
}

func newNominationResponses(nominations []models.Nomination) []dto.NominationResponse {
	responses := make([]dto.NominationResponse, 0, len(nominations))
	for _, nomination := range nominations {
		responses = append(responses, newNominationResponse(nomination))
	}
	return responses
}

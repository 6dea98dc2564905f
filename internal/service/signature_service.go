package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/catalog"
	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/observability"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

// SignatureService awards stamps and lists a student's recognition log.
type SignatureService interface {
	Award(ctx context.Context, actor Actor, req dto.AwardSignatureRequest) (dto.SignatureResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.SignatureResponse, error)
}

type signatureService struct {
	signatures  repository.SignatureRepository
	students    repository.StudentRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	activity    ActivityRecorder
	invalidator PassportInvalidator
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSignatureService constructs the signature service.
func NewSignatureService(
	signatures repository.SignatureRepository,
	students repository.StudentRepository,
	validate *validator.Validate,
	activity ActivityRecorder,
	invalidator PassportInvalidator,
	logger zerolog.Logger,
) SignatureService {
	return &signatureService{
		signatures:  signatures,
		students:    students,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		activity:    activity,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "signature_service").Logger(),
		now:         time.Now,
	}
}

func (s *signatureService) Award(ctx context.Context, actor Actor, req dto.AwardSignatureRequest) (dto.SignatureResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SignatureResponse{}, err
	}

	if !catalog.IsCoreValue(req.Value) {
		return dto.SignatureResponse{}, fmt.Errorf("%w: %q", ErrUnknownValue, req.Value)
	}
	if !catalog.IsSubject(req.Subject) {
		return dto.SignatureResponse{}, fmt.Errorf("%w: %q", ErrUnknownSubject, req.Subject)
	}

	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return dto.SignatureResponse{}, notFound(err, ErrStudentNotFound)
	}

	signature := models.Signature{
		StudentID:   student.ID,
		TeacherName: actor.Name,
		Subject:     req.Subject,
		Value:       req.Value,
		SubValue:    strings.TrimSpace(req.SubValue),
		Note:        strings.TrimSpace(s.sanitizer.Sanitize(req.Note)),
		AwardedAt:   s.now().UnixMilli(),
	}
	if err := s.signatures.Create(ctx, &signature); err != nil {
		s.logger.Error().Err(err).Uint("student_id", student.ID).Msg("failed to award signature")
		return dto.SignatureResponse{}, err
	}

	observability.StampsAwarded().WithLabelValues(req.Value).Inc()
	s.invalidator.Invalidate(ctx, student.ID)

	if err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "signature.award",
		EntityType: "signature",
		EntityID:   &signature.ID,
		Metadata: map[string]interface{}{
			"student_id": student.ID,
			"subject":    signature.Subject,
			"value":      signature.Value,
		},
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to audit signature award")
	}

	return newSignatureResponse(signature), nil
}

func (s *signatureService) ListByStudent(ctx context.Context, studentID uint) ([]dto.SignatureResponse, error) {
	signatures, err := s.signatures.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SignatureResponse, 0, len(signatures))
	for _, signature := range signatures {
		responses = append(responses, newSignatureResponse(signature))
	}
	return responses, nil
}

func newSignatureResponse(signature models.Signature) dto.SignatureResponse {
	return dto.SignatureResponse{
		ID:          signature.ID,
		StudentID:   signature.StudentID,
		TeacherName: signature.TeacherName,
		Subject:     signature.Subject,
		Value:       signature.Value,
		SubValue:    signature.SubValue,
		Note:        signature.Note,
		AwardedAt:   signature.AwardedAt,
		CreatedAt:   signature.CreatedAt,
	}
}

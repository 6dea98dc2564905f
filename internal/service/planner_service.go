package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

// PlannerService manages a student's personal planner. Planner changes feed
// the planner-based achievements, so every mutation drops the cached passport.
type PlannerService interface {
	Create(ctx context.Context, studentID uint, req dto.CreatePlannerItemRequest) (dto.PlannerItemResponse, error)
	List(ctx context.Context, studentID uint) ([]dto.PlannerItemResponse, error)
	Update(ctx context.Context, studentID, itemID uint, req dto.UpdatePlannerItemRequest) (dto.PlannerItemResponse, error)
	Delete(ctx context.Context, studentID, itemID uint) error
}

type plannerService struct {
	planner     repository.PlannerRepository
	validator   *validator.Validate
	invalidator PassportInvalidator
	logger      zerolog.Logger
}

// NewPlannerService constructs the planner service.
func NewPlannerService(planner repository.PlannerRepository, validate *validator.Validate, invalidator PassportInvalidator, logger zerolog.Logger) PlannerService {
	return &plannerService{
		planner:     planner,
		validator:   validate,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "planner_service").Logger(),
	}
}

func (s *plannerService) Create(ctx context.Context, studentID uint, req dto.CreatePlannerItemRequest) (dto.PlannerItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.PlannerItemResponse{}, err
	}

	item := models.PlannerItem{
		StudentID: studentID,
		Title:     req.Title,
		Category:  req.Category,
		DueDate:   req.DueDate,
	}
	if err := s.planner.Create(ctx, &item); err != nil {
		return dto.PlannerItemResponse{}, err
	}

	s.invalidator.Invalidate(ctx, studentID)
	return newPlannerItemResponse(item), nil
}

func (s *plannerService) List(ctx context.Context, studentID uint) ([]dto.PlannerItemResponse, error) {
	items, err := s.planner.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PlannerItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, newPlannerItemResponse(item))
	}
	return responses, nil
}

func (s *plannerService) Update(ctx context.Context, studentID, itemID uint, req dto.UpdatePlannerItemRequest) (dto.PlannerItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.PlannerItemResponse{}, err
	}

	item, err := s.ownedItem(ctx, studentID, itemID)
	if err != nil {
		return dto.PlannerItemResponse{}, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.DueDate != nil {
		item.DueDate = *req.DueDate
	}
	if req.IsCompleted != nil {
		item.IsCompleted = *req.IsCompleted
	}

	if err := s.planner.Update(ctx, &item); err != nil {
		return dto.PlannerItemResponse{}, err
	}

	s.invalidator.Invalidate(ctx, studentID)
	return newPlannerItemResponse(item), nil
}

func (s *plannerService) Delete(ctx context.Context, studentID, itemID uint) error {
	if _, err := s.ownedItem(ctx, studentID, itemID); err != nil {
		return err
	}

	if err := s.planner.Delete(ctx, itemID); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, studentID)
	return nil
}

func (s *plannerService) ownedItem(ctx context.Context, studentID, itemID uint) (models.PlannerItem, error) {
	item, err := s.planner.GetByID(ctx, itemID)
	if err != nil {
		return models.PlannerItem{}, notFound(err, ErrPlannerItemNotFound)
	}
	// Ownership mismatches read as not-found so item ids stay unprobeable.
	if item.StudentID != studentID {
		return models.PlannerItem{}, ErrPlannerItemNotFound
	}
	return item, nil
}

func newPlannerItemResponse(item models.PlannerItem) dto.PlannerItemResponse {
	return dto.PlannerItemResponse{
		ID:          item.ID,
		StudentID:   item.StudentID,
		Title:       item.Title,
		Category:    item.Category,
		DueDate:     item.DueDate,
		IsCompleted: item.IsCompleted,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

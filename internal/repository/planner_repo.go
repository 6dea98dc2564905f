package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/models"
)

// PlannerRepository persists personal planner items.
type PlannerRepository interface {
	Create(ctx context.Context, item *models.PlannerItem) error
	GetByID(ctx context.Context, id uint) (models.PlannerItem, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.PlannerItem, error)
	Update(ctx context.Context, item *models.PlannerItem) error
	Delete(ctx context.Context, id uint) error
}

type plannerRepository struct {
	db *gorm.DB
}

// NewPlannerRepository constructs a planner repository.
func NewPlannerRepository(db *gorm.DB) PlannerRepository {
	return &plannerRepository{db: db}
}

func (r *plannerRepository) Create(ctx context.Context, item *models.PlannerItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *plannerRepository) GetByID(ctx context.Context, id uint) (models.PlannerItem, error) {
	var item models.PlannerItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.PlannerItem{}, err
	}
	return item, nil
}

func (r *plannerRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.PlannerItem, error) {
	var items []models.PlannerItem
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("due_date ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *plannerRepository) Update(ctx context.Context, item *models.PlannerItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *plannerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PlannerItem{}, id).Error
}

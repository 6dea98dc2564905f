package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/models"
)

// NominationRepository persists stamp nominations.
type NominationRepository interface {
	Create(ctx context.Context, nomination *models.Nomination) error
	GetByID(ctx context.Context, id uint) (models.Nomination, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Nomination, error)
	ListByStatus(ctx context.Context, status string) ([]models.Nomination, error)
	Update(ctx context.Context, nomination *models.Nomination) error
}

type nominationRepository struct {
	db *gorm.DB
}

// NewNominationRepository constructs a nomination repository.
func NewNominationRepository(db *gorm.DB) NominationRepository {
	return &nominationRepository{db: db}
}

func (r *nominationRepository) Create(ctx context.Context, nomination *models.Nomination) error {
	return r.db.WithContext(ctx).Create(nomination).Error
}

func (r *nominationRepository) GetByID(ctx context.Context, id uint) (models.Nomination, error) {
	var nomination models.Nomination
	if err := r.db.WithContext(ctx).First(&nomination, id).Error; err != nil {
		return models.Nomination{}, err
	}
	return nomination, nil
}

func (r *nominationRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Nomination, error) {
	var nominations []models.Nomination
	if err := r.db.WithContext(ctx).
		Where("student_id = ? OR nominated_by_id = ?", studentID, studentID).
		Order("created_at DESC").
		Find(&nominations).Error; err != nil {
		return nil, err
	}
	return nominations, nil
}

func (r *nominationRepository) ListByStatus(ctx context.Context, status string) ([]models.Nomination, error) {
	var nominations []models.Nomination
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&nominations).Error; err != nil {
		return nil, err
	}
	return nominations, nil
}

func (r *nominationRepository) Update(ctx context.Context, nomination *models.Nomination) error {
	return r.db.WithContext(ctx).Save(nomination).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/models"
)

// SignatureRepository persists recognition events. Signatures are append-only;
// the only delete path is the administrative progress reset.
type SignatureRepository interface {
	Create(ctx context.Context, signature *models.Signature) error
	ListByStudent(ctx context.Context, studentID uint) ([]models.Signature, error)
	ListAll(ctx context.Context) ([]models.Signature, error)
	DeleteByStudent(ctx context.Context, studentID uint) error
	CountByTeacher(ctx context.Context) (map[string]int64, error)
}

type signatureRepository struct {
	db *gorm.DB
}

// NewSignatureRepository constructs a signature repository.
func NewSignatureRepository(db *gorm.DB) SignatureRepository {
	return &signatureRepository{db: db}
}

func (r *signatureRepository) Create(ctx context.Context, signature *models.Signature) error {
	return r.db.WithContext(ctx).Create(signature).Error
}

func (r *signatureRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Signature, error) {
	var signatures []models.Signature
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&signatures).Error; err != nil {
		return nil, err
	}
	return signatures, nil
}

func (r *signatureRepository) ListAll(ctx context.Context) ([]models.Signature, error) {
	var signatures []models.Signature
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&signatures).Error; err != nil {
		return nil, err
	}
	return signatures, nil
}

func (r *signatureRepository) DeleteByStudent(ctx context.Context, studentID uint) error {
	return r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.Signature{}).Error
}

func (r *signatureRepository) CountByTeacher(ctx context.Context) (map[string]int64, error) {
	type row struct {
		TeacherName string
		Total       int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Signature{}).
		Select("teacher_name, COUNT(*) AS total").
		Group("teacher_name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, entry := range rows {
		counts[entry.TeacherName] = entry.Total
	}
	return counts, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/models"
)

// ClaimedRewardRepository records physically handed-out rewards.
type ClaimedRewardRepository interface {
	Create(ctx context.Context, claim *models.ClaimedReward) error
	ListIDsByStudent(ctx context.Context, studentID uint) ([]string, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.ClaimedReward, error)
	DeleteByStudent(ctx context.Context, studentID uint) error
}

type claimedRewardRepository struct {
	db *gorm.DB
}

// NewClaimedRewardRepository constructs a claimed reward repository.
func NewClaimedRewardRepository(db *gorm.DB) ClaimedRewardRepository {
	return &claimedRewardRepository{db: db}
}

func (r *claimedRewardRepository) Create(ctx context.Context, claim *models.ClaimedReward) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *claimedRewardRepository) ListIDsByStudent(ctx context.Context, studentID uint) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.ClaimedReward{}).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Pluck("achievement_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *claimedRewardRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.ClaimedReward, error) {
	var claims []models.ClaimedReward
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *claimedRewardRepository) DeleteByStudent(ctx context.Context, studentID uint) error {
	return r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.ClaimedReward{}).Error
}

// CustomRewardRepository persists teacher-authored achievement definitions.
type CustomRewardRepository interface {
	Create(ctx context.Context, reward *models.CustomReward) error
	GetBySlug(ctx context.Context, slug string) (models.CustomReward, error)
	List(ctx context.Context) ([]models.CustomReward, error)
	Delete(ctx context.Context, id uint) error
}

type customRewardRepository struct {
	db *gorm.DB
}

// NewCustomRewardRepository constructs a custom reward repository.
func NewCustomRewardRepository(db *gorm.DB) CustomRewardRepository {
	return &customRewardRepository{db: db}
}

func (r *customRewardRepository) Create(ctx context.Context, reward *models.CustomReward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}

func (r *customRewardRepository) GetBySlug(ctx context.Context, slug string) (models.CustomReward, error) {
	var reward models.CustomReward
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&reward).Error; err != nil {
		return models.CustomReward{}, err
	}
	return reward, nil
}

func (r *customRewardRepository) List(ctx context.Context) ([]models.CustomReward, error) {
	var rewards []models.CustomReward
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *customRewardRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomReward{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

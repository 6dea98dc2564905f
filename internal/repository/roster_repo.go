package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/models"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TeacherRepository provides access to teacher records.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id uint) (models.Teacher, error)
	List(ctx context.Context) ([]models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id uint) error
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository constructs a teacher repository.
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepository) GetByID(ctx context.Context, id uint) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return models.Teacher{}, err
	}
	return teacher, nil
}

func (r *teacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *teacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Teacher{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// QuizScoreRepository stores external quiz results.
type QuizScoreRepository interface {
	Upsert(ctx context.Context, score *models.QuizScore) error
	ScoresByStudent(ctx context.Context) (map[uint]int, error)
}

type quizScoreRepository struct {
	db *gorm.DB
}

// NewQuizScoreRepository constructs a quiz score repository.
func NewQuizScoreRepository(db *gorm.DB) QuizScoreRepository {
	return &quizScoreRepository{db: db}
}

func (r *quizScoreRepository) Upsert(ctx context.Context, score *models.QuizScore) error {
	var existing models.QuizScore
	err := r.db.WithContext(ctx).Where("student_id = ?", score.StudentID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(score).Error
	}
	if err != nil {
		return err
	}

	existing.Score = score.Score
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *quizScoreRepository) ScoresByStudent(ctx context.Context) (map[uint]int, error) {
	var scores []models.QuizScore
	if err := r.db.WithContext(ctx).Find(&scores).Error; err != nil {
		return nil, err
	}

	byStudent := make(map[uint]int, len(scores))
	for _, score := range scores {
		byStudent[score.StudentID] = score.Score
	}
	return byStudent, nil
}

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

// notFound maps the repository sentinel onto the service-level one.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// RosterService manages the student and teacher roster behind a read-through
// in-memory cache. The cache refreshes after every mutating call rather than
// being synced opportunistically.
type RosterService interface {
	Students(ctx context.Context) ([]dto.StudentResponse, error)
	CreateStudent(ctx context.Context, actor Actor, req dto.UpsertStudentRequest) (dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, actor Actor, id uint, req dto.UpsertStudentRequest) (dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, actor Actor, id uint) error
	ResetStudentProgress(ctx context.Context, actor Actor, id uint) error
	Teachers(ctx context.Context) ([]dto.TeacherResponse, error)
	CreateTeacher(ctx context.Context, actor Actor, req dto.UpsertTeacherRequest) (dto.TeacherResponse, error)
	UpdateTeacher(ctx context.Context, actor Actor, id uint, req dto.UpsertTeacherRequest) (dto.TeacherResponse, error)
	DeleteTeacher(ctx context.Context, actor Actor, id uint) error
	UpsertQuizScore(ctx context.Context, actor Actor, req dto.UpsertQuizScoreRequest) error
}

type rosterService struct {
	students    repository.StudentRepository
	teachers    repository.TeacherRepository
	signatures  repository.SignatureRepository
	claims      repository.ClaimedRewardRepository
	quiz        repository.QuizScoreRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	invalidator PassportInvalidator
	logger      zerolog.Logger

	mu            sync.RWMutex
	studentCache  []models.Student
	teacherCache  []models.Teacher
	studentLoaded bool
	teacherLoaded bool
}

// NewRosterService constructs the roster service.
func NewRosterService(
	students repository.StudentRepository,
	teachers repository.TeacherRepository,
	signatures repository.SignatureRepository,
	claims repository.ClaimedRewardRepository,
	quiz repository.QuizScoreRepository,
	validate *validator.Validate,
	activity ActivityRecorder,
	invalidator PassportInvalidator,
	logger zerolog.Logger,
) RosterService {
	return &rosterService{
		students:    students,
		teachers:    teachers,
		signatures:  signatures,
		claims:      claims,
		quiz:        quiz,
		validator:   validate,
		activity:    activity,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "roster_service").Logger(),
	}
}

func (s *rosterService) Students(ctx context.Context) ([]dto.StudentResponse, error) {
	s.mu.RLock()
	if s.studentLoaded {
		cached := s.studentCache
		s.mu.RUnlock()
		return newStudentResponses(cached), nil
	}
	s.mu.RUnlock()

	students, err := s.refreshStudents(ctx)
	if err != nil {
		return nil, err
	}
	return newStudentResponses(students), nil
}

func (s *rosterService) CreateStudent(ctx context.Context, actor Actor, req dto.UpsertStudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{Name: req.Name, Email: req.Email, Grade: req.Grade}
	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}
	s.afterRosterMutation(ctx, actor, "student.create", "student", student.ID)

	return newStudentResponse(student), nil
}

func (s *rosterService) UpdateStudent(ctx context.Context, actor Actor, id uint, req dto.UpsertStudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, notFound(err, ErrStudentNotFound)
	}
	student.Name = req.Name
	student.Email = req.Email
	student.Grade = req.Grade
	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}
	s.afterRosterMutation(ctx, actor, "student.update", "student", id)

	return newStudentResponse(student), nil
}

func (s *rosterService) DeleteStudent(ctx context.Context, actor Actor, id uint) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return notFound(err, ErrStudentNotFound)
	}
	s.afterRosterMutation(ctx, actor, "student.delete", "student", id)
	return nil
}

// ResetStudentProgress is the bulk administrative reset: it removes every
// signature and claimed reward the student has.
func (s *rosterService) ResetStudentProgress(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.students.GetByID(ctx, id); err != nil {
		return notFound(err, ErrStudentNotFound)
	}

	if err := s.signatures.DeleteByStudent(ctx, id); err != nil {
		return err
	}
	if err := s.claims.DeleteByStudent(ctx, id); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, id)
	s.afterRosterMutation(ctx, actor, "student.reset_progress", "student", id)
	return nil
}

func (s *rosterService) Teachers(ctx context.Context) ([]dto.TeacherResponse, error) {
	s.mu.RLock()
	if s.teacherLoaded {
		cached := s.teacherCache
		s.mu.RUnlock()
		return newTeacherResponses(cached), nil
	}
	s.mu.RUnlock()

	teachers, err := s.refreshTeachers(ctx)
	if err != nil {
		return nil, err
	}
	return newTeacherResponses(teachers), nil
}

func (s *rosterService) CreateTeacher(ctx context.Context, actor Actor, req dto.UpsertTeacherRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher := models.Teacher{Name: req.Name, Email: req.Email, Subject: req.Subject}
	if err := s.teachers.Create(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}
	s.afterRosterMutation(ctx, actor, "teacher.create", "teacher", teacher.ID)

	return newTeacherResponse(teacher), nil
}

func (s *rosterService) UpdateTeacher(ctx context.Context, actor Actor, id uint, req dto.UpsertTeacherRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return dto.TeacherResponse{}, notFound(err, ErrTeacherNotFound)
	}
	teacher.Name = req.Name
	teacher.Email = req.Email
	teacher.Subject = req.Subject
	if err := s.teachers.Update(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}
	s.afterRosterMutation(ctx, actor, "teacher.update", "teacher", id)

	return newTeacherResponse(teacher), nil
}

func (s *rosterService) DeleteTeacher(ctx context.Context, actor Actor, id uint) error {
	if err := s.teachers.Delete(ctx, id); err != nil {
		return notFound(err, ErrTeacherNotFound)
	}
	s.afterRosterMutation(ctx, actor, "teacher.delete", "teacher", id)
	return nil
}

func (s *rosterService) UpsertQuizScore(ctx context.Context, actor Actor, req dto.UpsertQuizScoreRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	score := models.QuizScore{StudentID: req.StudentID, Score: req.Score}
	if err := s.quiz.Upsert(ctx, &score); err != nil {
		return err
	}
	s.afterRosterMutation(ctx, actor, "quiz_score.upsert", "quiz_score", req.StudentID)
	return nil
}

// afterRosterMutation refreshes the caches and records the audit entry.
func (s *rosterService) afterRosterMutation(ctx context.Context, actor Actor, action, entityType string, entityID uint) {
	if _, err := s.refreshStudents(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to refresh student cache")
	}
	if _, err := s.refreshTeachers(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to refresh teacher cache")
	}

	if err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: entityType,
		EntityID:   &entityID,
	}); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to audit roster mutation")
	}
}

func (s *rosterService) refreshStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.studentCache = students
	s.studentLoaded = true
	s.mu.Unlock()
	return students, nil
}

func (s *rosterService) refreshTeachers(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.teacherCache = teachers
	s.teacherLoaded = true
	s.mu.Unlock()
	return teachers, nil
}

func newStudentResponse(student models.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:        student.ID,
		Name:      student.Name,
		Email:     student.Email,
		Grade:     student.Grade,
		CreatedAt: student.CreatedAt,
	}
}

func newStudentResponses(students []models.Student) []dto.StudentResponse {
	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, newStudentResponse(student))
	}
	return responses
}

func newTeacherResponse(teacher models.Teacher) dto.TeacherResponse {
	return dto.TeacherResponse{
		ID:        teacher.ID,
		Name:      teacher.Name,
		Email:     teacher.Email,
		Subject:   teacher.Subject,
		CreatedAt: teacher.CreatedAt,
	}
}

func newTeacherResponses(teachers []models.Teacher) []dto.TeacherResponse {
	responses := make([]dto.TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		responses = append(responses, newTeacherResponse(teacher))
	}
	return responses
}

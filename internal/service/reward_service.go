package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/passport-go-api/internal/catalog"
	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

// genericRewardText marks achievements with no physical reward to hand out;
// they are excluded from the pending claim queue.
const genericRewardText = "Achievement Unlocked"

const pendingQueueWorkers = 8

// RewardService manages teacher-authored rewards and physical reward claims.
type RewardService interface {
	CreateCustomReward(ctx context.Context, actor Actor, req dto.CreateCustomRewardRequest) (dto.CustomRewardResponse, error)
	ListCustomRewards(ctx context.Context) ([]dto.CustomRewardResponse, error)
	DeleteCustomReward(ctx context.Context, actor Actor, id uint) error
	Claim(ctx context.Context, actor Actor, req dto.ClaimRewardRequest) error
	PendingRewards(ctx context.Context) ([]dto.PendingRewardResponse, error)
}

type rewardService struct {
	rewards     repository.CustomRewardRepository
	claims      repository.ClaimedRewardRepository
	students    repository.StudentRepository
	passports   PassportService
	validator   *validator.Validate
	activity    ActivityRecorder
	invalidator PassportInvalidator
	notifier    NotificationService
	logger      zerolog.Logger
}

// NewRewardService constructs the reward service.
func NewRewardService(
	rewards repository.CustomRewardRepository,
	claims repository.ClaimedRewardRepository,
	students repository.StudentRepository,
	passports PassportService,
	validate *validator.Validate,
	activity ActivityRecorder,
	invalidator PassportInvalidator,
	notifier NotificationService,
	logger zerolog.Logger,
) RewardService {
	return &rewardService{
		rewards:     rewards,
		claims:      claims,
		students:    students,
		passports:   passports,
		validator:   validate,
		activity:    activity,
		invalidator: invalidator,
		notifier:    notifier,
		logger:      logger.With().Str("component", "reward_service").Logger(),
	}
}

func (s *rewardService) CreateCustomReward(ctx context.Context, actor Actor, req dto.CreateCustomRewardRequest) (dto.CustomRewardResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CustomRewardResponse{}, err
	}
	if err := validateCriteriaTargets(req.Criteria); err != nil {
		return dto.CustomRewardResponse{}, err
	}

	slug := slugify(req.Title)
	if _, exists := catalog.DefinitionByID(slug); exists {
		return dto.CustomRewardResponse{}, fmt.Errorf("%w: %q collides with a built-in achievement", ErrRewardIDTaken, slug)
	}

	reward := models.CustomReward{
		Slug:              slug,
		Title:             req.Title,
		Description:       req.Description,
		Reward:            req.Reward,
		Grades:            req.Grades,
		Subject:           req.Subject,
		CriteriaType:      req.Criteria.Type,
		CriteriaThreshold: req.Criteria.Threshold,
		CriteriaValue:     req.Criteria.Value,
		CriteriaSubject:   req.Criteria.Subject,
		CriteriaSubValue:  req.Criteria.SubValue,
		CreatedBy:         actor.Name,
	}
	if err := s.rewards.Create(ctx, &reward); err != nil {
		return dto.CustomRewardResponse{}, err
	}

	if err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "reward.create",
		EntityType: "custom_reward",
		EntityID:   &reward.ID,
		Metadata:   map[string]interface{}{"slug": reward.Slug},
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to audit custom reward creation")
	}

	return newCustomRewardResponse(reward), nil
}

func (s *rewardService) ListCustomRewards(ctx context.Context) ([]dto.CustomRewardResponse, error) {
	rewards, err := s.rewards.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CustomRewardResponse, 0, len(rewards))
	for _, reward := range rewards {
		responses = append(responses, newCustomRewardResponse(reward))
	}
	return responses, nil
}

func (s *rewardService) DeleteCustomReward(ctx context.Context, actor Actor, id uint) error {
	if err := s.rewards.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRewardNotFound
		}
		return err
	}

	if err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "reward.delete",
		EntityType: "custom_reward",
		EntityID:   &id,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to audit custom reward deletion")
	}

	return nil
}

// Claim records that the physical reward for an unlocked achievement has been
// handed out. Claiming never changes unlock state.
func (s *rewardService) Claim(ctx context.Context, actor Actor, req dto.ClaimRewardRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	results, err := s.passports.EvaluateFor(ctx, req.StudentID)
	if err != nil {
		return err
	}

	var target *dto.PendingRewardResponse
	for _, result := range results {
		if result.ID != req.AchievementID {
			continue
		}
		if !result.IsUnlocked {
			return fmt.Errorf("%w: %q for student %d", ErrAchievementLocked, req.AchievementID, req.StudentID)
		}
		if result.IsClaimed {
			return fmt.Errorf("%w: %q for student %d", ErrAlreadyClaimed, req.AchievementID, req.StudentID)
		}
		target = &dto.PendingRewardResponse{
			StudentID:     req.StudentID,
			AchievementID: result.ID,
			Title:         result.Title,
			Reward:        result.Reward,
		}
		break
	}
	if target == nil {
		return fmt.Errorf("%w: %q", ErrAchievementUnknown, req.AchievementID)
	}

	claim := models.ClaimedReward{
		StudentID:     req.StudentID,
		AchievementID: req.AchievementID,
		ClaimedBy:     actor.Name,
	}
	if err := s.claims.Create(ctx, &claim); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, req.StudentID)

	if err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "reward.claim",
		EntityType: "claimed_reward",
		EntityID:   &claim.ID,
		Metadata: map[string]interface{}{
			"student_id":     req.StudentID,
			"achievement_id": req.AchievementID,
		},
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to audit reward claim")
	}

	if s.notifier != nil {
		userID := fmt.Sprintf("student:%d", req.StudentID)
		message := fmt.Sprintf("Your reward for %s has been handed out", target.Title)
		if _, err := s.notifier.Publish(ctx, userID, NotificationRewardClaimed, message); err != nil {
			s.logger.Warn().Err(err).Msg("failed to emit reward claim notification")
		}
	}

	return nil
}

// PendingRewards evaluates the whole population and lists unlocked, unclaimed
// achievements with a physical reward to hand out. Per-student evaluations are
// independent, so they run concurrently.
func (s *rewardService) PendingRewards(ctx context.Context) ([]dto.PendingRewardResponse, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		pending []dto.PendingRewardResponse
		wg      sync.WaitGroup
		sem     = make(chan struct{}, pendingQueueWorkers)
	)

	for _, student := range students {
		wg.Add(1)
		sem <- struct{}{}
		go func(student models.Student) {
			defer wg.Done()
			defer func() { <-sem }()

			results, err := s.passports.EvaluateFor(ctx, student.ID)
			if err != nil {
				s.logger.Warn().Err(err).Uint("student_id", student.ID).Msg("failed to evaluate student for pending rewards")
				return
			}

			var rows []dto.PendingRewardResponse
			for _, result := range results {
				if !result.IsUnlocked || result.IsClaimed {
					continue
				}
				if strings.EqualFold(strings.TrimSpace(result.Reward), genericRewardText) {
					continue
				}
				rows = append(rows, dto.PendingRewardResponse{
					StudentID:     student.ID,
					StudentName:   student.Name,
					Grade:         student.Grade,
					AchievementID: result.ID,
					Title:         result.Title,
					Reward:        result.Reward,
				})
			}

			if len(rows) > 0 {
				mu.Lock()
				pending = append(pending, rows...)
				mu.Unlock()
			}
		}(student)
	}
	wg.Wait()

	// Concurrent collection scrambles order; restore roster order.
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].StudentID < pending[j].StudentID
	})

	return pending, nil
}

func validateCriteriaTargets(criteria dto.CriteriaRequest) error {
	switch catalog.EvalType(criteria.Type) {
	case catalog.EvalValue:
		if !catalog.IsCoreValue(criteria.Value) {
			return fmt.Errorf("%w: %q in criteria", ErrUnknownValue, criteria.Value)
		}
	case catalog.EvalSubjectMastery:
		if !catalog.IsSubject(criteria.Subject) {
			return fmt.Errorf("%w: %q in criteria", ErrUnknownSubject, criteria.Subject)
		}
	}
	return nil
}

func newCustomRewardResponse(reward models.CustomReward) dto.CustomRewardResponse {
	return dto.CustomRewardResponse{
		ID:          reward.ID,
		Slug:        reward.Slug,
		Title:       reward.Title,
		Description: reward.Description,
		Reward:      reward.Reward,
		Grades:      reward.Grades,
		Subject:     reward.Subject,
		Criteria: dto.CriteriaRequest{
			Type:      reward.CriteriaType,
			Threshold: reward.CriteriaThreshold,
			Value:     reward.CriteriaValue,
			Subject:   reward.CriteriaSubject,
			SubValue:  reward.CriteriaSubValue,
		},
		CreatedBy: reward.CreatedBy,
		CreatedAt: reward.CreatedAt,
	}
}

// slugify turns a reward title into a stable achievement id.
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

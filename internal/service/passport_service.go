package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/passport-go-api/internal/achievement"
	"github.com/noah-isme/passport-go-api/internal/catalog"
	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/observability"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

// PassportService evaluates and serves a student's values passport.
type PassportService interface {
	GetPassport(ctx context.Context, studentID uint) (dto.PassportResponse, error)
	GetStats(ctx context.Context, studentID uint) (dto.StatsResponse, error)
	EvaluateFor(ctx context.Context, studentID uint) ([]achievement.StudentAchievement, error)
	Invalidate(ctx context.Context, studentID uint)
}

// PassportInvalidator is the slice of PassportService that mutating flows use
// to drop stale cached evaluations.
type PassportInvalidator interface {
	Invalidate(ctx context.Context, studentID uint)
}

type passportService struct {
	signatures repository.SignatureRepository
	claims     repository.ClaimedRewardRepository
	planner    repository.PlannerRepository
	rewards    repository.CustomRewardRepository
	students   repository.StudentRepository
	engine     *achievement.Engine
	notifier   NotificationService
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewPassportService wires the evaluation engine to its data providers.
// notifier may be nil when unlock events are not wanted.
func NewPassportService(
	signatures repository.SignatureRepository,
	claims repository.ClaimedRewardRepository,
	planner repository.PlannerRepository,
	rewards repository.CustomRewardRepository,
	students repository.StudentRepository,
	engine *achievement.Engine,
	notifier NotificationService,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) PassportService {
	return &passportService{
		signatures: signatures,
		claims:     claims,
		planner:    planner,
		rewards:    rewards,
		students:   students,
		engine:     engine,
		notifier:   notifier,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger.With().Str("component", "passport_service").Logger(),
	}
}

func passportCacheKey(studentID uint) string {
	return fmt.Sprintf("passport:student:%d", studentID)
}

func unlockSnapshotKey(studentID uint) string {
	return fmt.Sprintf("passport:unlocked:%d", studentID)
}

func (s *passportService) GetPassport(ctx context.Context, studentID uint) (dto.PassportResponse, error) {
	cacheKey := passportCacheKey(studentID)
	tracer := otel.Tracer("github.com/noah-isme/passport-go-api/internal/service/passport")
	ctx, span := tracer.Start(ctx, "passport.evaluate")
	span.SetAttributes(attribute.Int64("passport.student_id", int64(studentID)))
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.PassportResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("passport cache hit")
				span.SetAttributes(attribute.Bool("passport.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read passport cache")
		}
	}

	input, err := s.loadInput(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return dto.PassportResponse{}, err
	}

	start := time.Now()
	results := s.engine.Evaluate(input)
	observability.EvaluationDuration().Observe(time.Since(start).Seconds())

	unlocked := achievement.UnlockedIDs(results)
	fresh := s.detectFreshUnlocks(ctx, studentID, unlocked)
	s.notifyUnlocks(ctx, studentID, results, fresh)

	response := dto.PassportResponse{
		StudentID:     studentID,
		Stats:         newStatsResponse(achievement.Stats(input.Signatures)),
		Achievements:  results,
		UnlockedCount: len(unlocked),
		NewlyUnlocked: fresh,
	}
	span.SetAttributes(
		attribute.Int("passport.signature_count", len(input.Signatures)),
		attribute.Int("passport.unlocked_count", len(unlocked)),
	)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store passport cache")
			}
		}
	}

	return response, nil
}

func (s *passportService) GetStats(ctx context.Context, studentID uint) (dto.StatsResponse, error) {
	signatures, err := s.signatures.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StatsResponse{}, err
	}
	return newStatsResponse(achievement.Stats(toEngineSignatures(signatures))), nil
}

// EvaluateFor runs one evaluation without touching the cache or emitting
// unlock events. Used by the reward claim queue and claim verification.
func (s *passportService) EvaluateFor(ctx context.Context, studentID uint) ([]achievement.StudentAchievement, error) {
	input, err := s.loadInput(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.engine.Evaluate(input), nil
}

func (s *passportService) Invalidate(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, passportCacheKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate passport cache")
	}
}

func (s *passportService) loadInput(ctx context.Context, studentID uint) (achievement.Input, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return achievement.Input{}, err
	}

	signatures, err := s.signatures.ListByStudent(ctx, studentID)
	if err != nil {
		return achievement.Input{}, err
	}

	claimedIDs, err := s.claims.ListIDsByStudent(ctx, studentID)
	if err != nil {
		return achievement.Input{}, err
	}

	plannerItems, err := s.planner.ListByStudent(ctx, studentID)
	if err != nil {
		return achievement.Input{}, err
	}

	rewards, err := s.rewards.List(ctx)
	if err != nil {
		return achievement.Input{}, err
	}

	// Grade scoping happens here; the engine itself is grade-agnostic.
	var customDefs []catalog.Definition
	for _, reward := range rewards {
		if reward.AppliesTo(student.Grade) {
			customDefs = append(customDefs, reward.Definition())
		}
	}

	planner := make([]achievement.PlannerItem, 0, len(plannerItems))
	for _, item := range plannerItems {
		planner = append(planner, achievement.PlannerItem{
			Category:    item.Category,
			IsCompleted: item.IsCompleted,
		})
	}

	return achievement.Input{
		Signatures: toEngineSignatures(signatures),
		ClaimedIDs: claimedIDs,
		Planner:    planner,
		CustomDefs: customDefs,
	}, nil
}

// detectFreshUnlocks diffs the unlocked set against the previous snapshot.
// A missing snapshot means first load, which never reports fresh unlocks.
func (s *passportService) detectFreshUnlocks(ctx context.Context, studentID uint, unlocked []string) []string {
	if s.cache == nil {
		return nil
	}

	key := unlockSnapshotKey(studentID)
	var fresh []string

	previous, err := s.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var prevIDs []string
		if unmarshalErr := json.Unmarshal([]byte(previous), &prevIDs); unmarshalErr == nil {
			fresh = achievement.Diff(prevIDs, unlocked)
		}
	case err != redis.Nil:
		s.logger.Warn().Err(err).Msg("failed to read unlock snapshot")
		return nil
	}

	if payload, marshalErr := json.Marshal(unlocked); marshalErr == nil {
		if err := s.cache.Set(ctx, key, payload, 0).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to store unlock snapshot")
		}
	}

	return fresh
}

func (s *passportService) notifyUnlocks(ctx context.Context, studentID uint, results []achievement.StudentAchievement, fresh []string) {
	if s.notifier == nil || len(fresh) == 0 {
		return
	}

	userID := fmt.Sprintf("student:%d", studentID)
	for _, id := range fresh {
		title := id
		for _, result := range results {
			if result.ID == id {
				title = result.Title
				break
			}
		}

		message := fmt.Sprintf("Achievement unlocked: %s", title)
		if _, err := s.notifier.Publish(ctx, userID, NotificationAchievementUnlocked, message); err != nil {
			s.logger.Warn().Err(err).Str("achievement_id", id).Msg("failed to emit unlock notification")
		}
	}
}

func toEngineSignatures(signatures []models.Signature) []achievement.Signature {
	out := make([]achievement.Signature, 0, len(signatures))
	for _, sig := range signatures {
		out = append(out, achievement.Signature{
			ID:          sig.ID,
			Subject:     sig.Subject,
			Value:       catalog.CoreValue(sig.Value),
			SubValue:    sig.SubValue,
			TeacherName: sig.TeacherName,
			Note:        sig.Note,
			AwardedAt:   sig.AwardedAt,
		})
	}
	return out
}

func newStatsResponse(totals achievement.Totals) dto.StatsResponse {
	byValue := make(map[string]int, len(totals.ByValue))
	for value, count := range totals.ByValue {
		byValue[string(value)] = count
	}

	return dto.StatsResponse{
		Total:     totals.Total,
		ByValue:   byValue,
		BySubject: totals.BySubject,
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/passport-go-api/internal/achievement"
	"github.com/noah-isme/passport-go-api/internal/catalog"
	"github.com/noah-isme/passport-go-api/internal/dto"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
)

const leaderboardWorkers = 8

// LeaderboardService ranks the student population and summarises teacher
// awarding activity. It adds no evaluation logic of its own; all per-student
// numbers come from the engine and the stats aggregator.
type LeaderboardService interface {
	Leaderboard(ctx context.Context, dimension string) (dto.LeaderboardResponse, error)
	TeacherActivity(ctx context.Context) (dto.TeacherActivityResponse, error)
}

type leaderboardService struct {
	students   repository.StudentRepository
	signatures repository.SignatureRepository
	quiz       repository.QuizScoreRepository
	passports  PassportService
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewLeaderboardService constructs the leaderboard aggregator.
func NewLeaderboardService(
	students repository.StudentRepository,
	signatures repository.SignatureRepository,
	quiz repository.QuizScoreRepository,
	passports PassportService,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) LeaderboardService {
	return &leaderboardService{
		students:   students,
		signatures: signatures,
		quiz:       quiz,
		passports:  passports,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

func (s *leaderboardService) Leaderboard(ctx context.Context, dimension string) (dto.LeaderboardResponse, error) {
	kind, value, err := parseDimension(dimension)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	tracer := otel.Tracer("github.com/noah-isme/passport-go-api/internal/service/leaderboard")
	ctx, span := tracer.Start(ctx, "leaderboard.rank")
	span.SetAttributes(attribute.String("leaderboard.dimension", dimension))
	defer span.End()

	cacheKey := "leaderboard:" + dimension
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.LeaderboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("leaderboard.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	allSignatures, err := s.signatures.ListAll(ctx)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}
	byStudent := make(map[uint][]models.Signature, len(students))
	for _, sig := range allSignatures {
		byStudent[sig.StudentID] = append(byStudent[sig.StudentID], sig)
	}

	quizScores, err := s.quiz.ScoresByStudent(ctx)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}

	entries := s.buildEntries(ctx, students, byStudent, quizScores)
	rank(entries, kind, value)

	response := dto.LeaderboardResponse{Dimension: kind, Value: value, Entries: entries}
	span.SetAttributes(attribute.Int("leaderboard.entry_count", len(entries)))

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return response, nil
}

// buildEntries computes one row per student, in roster order. Achievement
// counts need a full engine run per student; those run concurrently since each
// evaluation is independent and side-effect-free.
func (s *leaderboardService) buildEntries(ctx context.Context, students []models.Student, byStudent map[uint][]models.Signature, quizScores map[uint]int) []dto.LeaderboardEntry {
	entries := make([]dto.LeaderboardEntry, len(students))

	var wg sync.WaitGroup
	sem := make(chan struct{}, leaderboardWorkers)

	for i, student := range students {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, student models.Student) {
			defer wg.Done()
			defer func() { <-sem }()

			totals := achievement.Stats(toEngineSignatures(byStudent[student.ID]))

			unlockCount := 0
			if results, err := s.passports.EvaluateFor(ctx, student.ID); err == nil {
				unlockCount = len(achievement.UnlockedIDs(results))
			} else {
				s.logger.Warn().Err(err).Uint("student_id", student.ID).Msg("failed to evaluate student for leaderboard")
			}

			byValue := make(map[string]int, len(totals.ByValue))
			for value, count := range totals.ByValue {
				byValue[string(value)] = count
			}

			entries[i] = dto.LeaderboardEntry{
				StudentID:        student.ID,
				Name:             student.Name,
				Grade:            student.Grade,
				Total:            totals.Total,
				ByValue:          byValue,
				AchievementCount: unlockCount,
				QuizScore:        quizScores[student.ID],
			}
		}(i, student)
	}
	wg.Wait()

	return entries
}

func (s *leaderboardService) TeacherActivity(ctx context.Context) (dto.TeacherActivityResponse, error) {
	counts, err := s.signatures.CountByTeacher(ctx)
	if err != nil {
		return dto.TeacherActivityResponse{}, err
	}

	teachers := make([]dto.TeacherActivityEntry, 0, len(counts))
	for name, total := range counts {
		teachers = append(teachers, dto.TeacherActivityEntry{TeacherName: name, StampCount: total})
	}
	sort.Slice(teachers, func(i, j int) bool {
		if teachers[i].StampCount != teachers[j].StampCount {
			return teachers[i].StampCount > teachers[j].StampCount
		}
		return teachers[i].TeacherName < teachers[j].TeacherName
	})

	return dto.TeacherActivityResponse{Teachers: teachers}, nil
}

// parseDimension splits "value:Truth" style dimensions. Empty means total.
func parseDimension(dimension string) (kind, value string, err error) {
	if dimension == "" {
		return dto.RankByTotal, "", nil
	}

	if strings.HasPrefix(dimension, dto.RankByValue+":") {
		value = strings.TrimPrefix(dimension, dto.RankByValue+":")
		if !catalog.IsCoreValue(value) {
			return "", "", fmt.Errorf("%w: unknown core value %q", ErrUnknownDimension, value)
		}
		return dto.RankByValue, value, nil
	}

	switch dimension {
	case dto.RankByTotal, dto.RankByAchievements, dto.RankByQuiz:
		return dimension, "", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}
}

// rank sorts entries by the selected dimension, descending. The sort is
// stable, so ties keep roster order; no secondary key is applied.
func rank(entries []dto.LeaderboardEntry, kind, value string) {
	score := func(entry dto.LeaderboardEntry) int {
		switch kind {
		case dto.RankByValue:
			return entry.ByValue[value]
		case dto.RankByAchievements:
			return entry.AchievementCount
		case dto.RankByQuiz:
			return entry.QuizScore
		default:
			return entry.Total
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return score(entries[i]) > score(entries[j])
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

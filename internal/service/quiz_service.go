package service

import (
	"ai_hub_backend/internal/model"
	"ai_hub_backend/internal/quizbank"
	"ai_hub_backend/internal/repository"
	"ai_hub_backend/internal/util"
	"ai_hub_backend/pkg/logger"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const moduleStatsCacheKey = "aihub:module-stats"
const moduleStatsCacheTTL = 60 * time.Second

type QuizService struct {
	Repo  *repository.SubmissionRepository
	Bank  *quizbank.Bank
	Redis *redis.Client
}

func NewQuizService(repo *repository.SubmissionRepository, bank *quizbank.Bank, rdb *redis.Client) *QuizService {
	return &QuizService{Repo: repo, Bank: bank, Redis: rdb}
}

// SubmittedAnswer mirrors the per-question detail posted by the quiz UI. Only
// Selected is trusted; everything else is rebuilt from the bank.
type SubmittedAnswer struct {
	Question      string `json:"question"`
	Selected      string `json:"selected"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

type QuizSubmissionRequest struct {
	Name       string                     `json:"name" binding:"required"`
	Department string                     `json:"department" binding:"required"`
	Email      string                     `json:"email"`
	ModuleID   int                        `json:"module_id" binding:"required"`
	ModuleName string                     `json:"module_name"`
	Answers    map[string]SubmittedAnswer `json:"answers" binding:"required"`
	Score      int                        `json:"score"`
	TimeTaken  int                        `json:"time_taken"`
	Feedback   string                     `json:"feedback"`
}

// Submit validates a completed attempt against the bank, recomputes the score
// server-side, and persists the record. The client-reported score is ignored
// for storage; a mismatch is logged but not an error.
func (s *QuizService) Submit(req QuizSubmissionRequest) (*model.QuizSubmission, error) {
	module, ok := s.Bank.Module(req.ModuleID)
	if !ok {
		return nil, util.ErrModuleNotFound
	}

	// Every submitted answer must reference a real question.
	for key := range req.Answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, util.ErrUnknownQuestion
		}
		if _, ok := module.Question(id); !ok {
			return nil, util.ErrUnknownQuestion
		}
	}

	score := 0
	detail := make(map[string]model.AnswerDetail, len(module.Questions))
	for i := range module.Questions {
		q := &module.Questions[i]
		ans, ok := req.Answers[strconv.Itoa(q.ID)]
		if !ok {
			return nil, util.ErrIncompleteAnswers
		}
		correct := ans.Selected == q.CorrectOption()
		if correct {
			score++
		}
		detail[strconv.Itoa(q.ID)] = model.AnswerDetail{
			Question:      q.Text,
			Selected:      ans.Selected,
			Correct:       correct,
			CorrectAnswer: q.CorrectOption(),
			Explanation:   q.Explanation,
		}
	}

	if score != req.Score {
		logger.Log.Warn("client score mismatch, using server-side score",
			zap.String("name", req.Name),
			zap.Int("module", req.ModuleID),
			zap.Int("clientScore", req.Score),
			zap.Int("serverScore", score))
	}

	answersJSON, err := json.Marshal(detail)
	if err != nil {
		return nil, err
	}

	sub := &model.QuizSubmission{
		Name:             util.NormalizeName(req.Name),
		NameKey:          util.NameKey(req.Name),
		Email:            util.NormalizeEmail(req.Email),
		Department:       req.Department,
		ModuleID:         module.ID,
		ModuleName:       module.Title,
		Answers:          answersJSON,
		Score:            score,
		TotalQuestions:   len(module.Questions),
		TimeTakenSeconds: req.TimeTaken,
		Feedback:         req.Feedback,
	}

	if err := s.Repo.Create(sub); err != nil {
		return nil, err
	}

	s.invalidateStatsCache()

	return sub, nil
}

// ModuleStat is the public per-module aggregate.
type ModuleStat struct {
	Completions int64   `json:"completions"`
	AvgScore    float64 `json:"avgScore"`
}

// ModuleStats returns completions and average score percentage per module,
// served from redis when available. Every bank module is present in the map
// even with zero submissions.
func (s *QuizService) ModuleStats(ctx context.Context) (map[string]ModuleStat, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, moduleStatsCacheKey).Result(); err == nil {
			var stats map[string]ModuleStat
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	rows, err := s.Repo.ModuleStats()
	if err != nil {
		return nil, err
	}

	stats := make(map[string]ModuleStat, quizbank.ModuleCount)
	for _, m := range s.Bank.Modules() {
		stats[strconv.Itoa(m.ID)] = ModuleStat{}
	}
	for _, row := range rows {
		stats[strconv.Itoa(row.ModuleID)] = ModuleStat{
			Completions: row.Completions,
			AvgScore:    math.Round(row.AvgScore*10) / 10,
		}
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, moduleStatsCacheKey, encoded, moduleStatsCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache module stats", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func (s *QuizService) invalidateStatsCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), moduleStatsCacheKey).Err(); err != nil && err != redis.Nil {
		logger.Log.Warn("failed to invalidate module stats cache", zap.Error(err))
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/codearena-go-api/internal/dto"
	"github.com/noah-isme/codearena-go-api/internal/models"
	"github.com/noah-isme/codearena-go-api/internal/observability"
	"github.com/noah-isme/codearena-go-api/internal/repository"
)

// ExecutionTimeLimitMs is the wall-clock budget beyond which a submission
// is judged Time Limit Exceeded.
const ExecutionTimeLimitMs = 5000

// Time bonus: one point is shaved per started 100ms, floored at zero.
const (
	timeBonusMax       = 10
	timeBonusStepMs    = 100
	runtimeErrorMarker = "Runtime Error"
)

// difficultyBasePoints is the per-tier award for an accepted submission.
var difficultyBasePoints = map[string]int{
	models.DifficultyEasy:   10,
	models.DifficultyMedium: 20,
	models.DifficultyHard:   30,
}

// ErrUnsupportedLanguage indicates the submitted language is outside the
// fixed enum.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// JudgeService scores client-reported test outcomes and records the
// resulting submission.
//
// Trust boundary: the judge never executes code. It scores whatever
// pass/fail outcomes the client reports, so a buggy or malicious client
// can report false passes. Treat the verdict as advisory.
type JudgeService interface {
	Submit(ctx context.Context, userID string, payload dto.SubmissionRequest) (dto.JudgeResponse, error)
	History(ctx context.Context, userID string) (dto.SubmissionHistoryResponse, error)
}

type judgeService struct {
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewJudgeService constructs the judge.
func NewJudgeService(submissions repository.SubmissionRepository, validate *validator.Validate, logger zerolog.Logger) JudgeService {
	return &judgeService{
		submissions: submissions,
		validator:   validate,
		logger:      logger.With().Str("component", "judge_service").Logger(),
		now:         time.Now,
	}
}

// Judge derives the verdict and point award for a set of reported test
// outcomes. It is a pure function.
//
// Points always use the medium difficulty base: the submit flow never
// resolves the problem against the catalog, so the difficulty tier of the
// solved problem does not influence the award. Known inconsistency, kept
// until scoring is reworked with product sign-off.
func Judge(outcomes []models.TestOutcome, executionTimeMs int64) (string, int) {
	total := len(outcomes)
	passed := 0
	runtimeError := false
	for _, outcome := range outcomes {
		if outcome.Passed {
			passed++
		}
		if strings.Contains(outcome.Output, runtimeErrorMarker) {
			runtimeError = true
		}
	}

	var status string
	switch {
	case total > 0 && passed == total:
		status = models.SubmissionStatusAccepted
	case runtimeError:
		status = models.SubmissionStatusRuntimeError
	case executionTimeMs > ExecutionTimeLimitMs:
		status = models.SubmissionStatusTimeLimitExceeded
	default:
		status = models.SubmissionStatusWrongAnswer
	}

	points := 0
	if status == models.SubmissionStatusAccepted {
		bonus := timeBonusMax - int(executionTimeMs/timeBonusStepMs)
		if bonus < 0 {
			bonus = 0
		}
		points = difficultyBasePoints[models.DifficultyMedium] + bonus
	}

	return status, points
}

func (s *judgeService) Submit(ctx context.Context, userID string, payload dto.SubmissionRequest) (dto.JudgeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.JudgeResponse{}, err
	}

	language := strings.ToLower(strings.TrimSpace(payload.Language))
	if !models.IsSupportedLanguage(language) {
		return dto.JudgeResponse{}, ErrUnsupportedLanguage
	}

	outcomes := payload.ToOutcomes()
	executionTime := payload.ExecutionTimeMs
	if executionTime <= 0 {
		executionTime = maxOutcomeTime(outcomes)
	}

	status, points := Judge(outcomes, executionTime)

	passed := 0
	for _, outcome := range outcomes {
		if outcome.Passed {
			passed++
		}
	}

	rawOutcomes, err := json.Marshal(outcomes)
	if err != nil {
		return dto.JudgeResponse{}, fmt.Errorf("marshal outcomes: %w", err)
	}

	submission := models.Submission{
		ID:              uuid.NewString(),
		UserID:          userID,
		ProblemID:       payload.ProblemID,
		Language:        language,
		Outcomes:        datatypes.JSON(rawOutcomes),
		TotalTests:      len(outcomes),
		PassedTests:     passed,
		ExecutionTimeMs: executionTime,
		Status:          status,
		Points:          points,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.JudgeResponse{}, fmt.Errorf("persist submission: %w", err)
	}

	observability.Submissions().WithLabelValues(status, language).Inc()
	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("problem_id", submission.ProblemID).
		Str("status", status).
		Int("points", points).
		Msg("submission judged")

	stats, err := s.runningStats(ctx, userID)
	if err != nil {
		return dto.JudgeResponse{}, err
	}

	return dto.JudgeResponse{
		Submission: dto.NewSubmissionResponse(submission),
		Stats:      stats,
	}, nil
}

func (s *judgeService) History(ctx context.Context, userID string) (dto.SubmissionHistoryResponse, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{UserID: userID})
	if err != nil {
		return dto.SubmissionHistoryResponse{}, err
	}

	items := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, dto.NewSubmissionResponse(submission))
	}

	return dto.SubmissionHistoryResponse{
		Submissions: items,
		Stats:       foldRunningStats(submissions),
	}, nil
}

func (s *judgeService) runningStats(ctx context.Context, userID string) (dto.RunningStats, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{UserID: userID})
	if err != nil {
		return dto.RunningStats{}, err
	}
	return foldRunningStats(submissions), nil
}

func foldRunningStats(submissions []models.Submission) dto.RunningStats {
	stats := dto.RunningStats{TotalSubmissions: len(submissions)}

	solved := map[string]struct{}{}
	for _, submission := range submissions {
		if submission.IsAccepted() {
			stats.Accepted++
			solved[submission.ProblemID] = struct{}{}
		}
	}
	stats.SolvedProblems = len(solved)
	stats.AcceptanceRate = roundedPercentage(stats.Accepted, stats.TotalSubmissions)

	return stats
}

func maxOutcomeTime(outcomes []models.TestOutcome) int64 {
	var max int64
	for _, outcome := range outcomes {
		if outcome.ExecutionTimeMs > max {
			max = outcome.ExecutionTimeMs
		}
	}
	return max
}

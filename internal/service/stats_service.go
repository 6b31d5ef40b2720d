package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/codearena-go-api/internal/dto"
	"github.com/noah-isme/codearena-go-api/internal/models"
	"github.com/noah-isme/codearena-go-api/internal/repository"
)

// Leaderboard timeframes.
const (
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeAll   = "all"
)

// DefaultLeaderboardLimit caps the leaderboard when the caller supplies
// no size.
const DefaultLeaderboardLimit = 50

const recentSubmissionCount = 10

// StatsService reduces the submission history into per-user rollups and
// the globally ranked leaderboard. It only folds over existing rows and
// never mutates anything.
type StatsService interface {
	Profile(ctx context.Context, userID string) (dto.ProfileResponse, error)
	Leaderboard(ctx context.Context, timeframe string, limit int) (dto.LeaderboardResponse, error)
}

type statsService struct {
	submissions repository.SubmissionRepository
	users       repository.UserRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStatsService constructs the aggregator. The redis client may be nil;
// the leaderboard is then recomputed on every query.
func NewStatsService(submissions repository.SubmissionRepository, users repository.UserRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StatsService {
	return &statsService{
		submissions: submissions,
		users:       users,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "stats_service").Logger(),
		now:         time.Now,
	}
}

func (s *statsService) Profile(ctx context.Context, userID string) (dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{UserID: userID})
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	profile := dto.ProfileResponse{
		UserID:    userID,
		Username:  user.Username(),
		Languages: map[string]int{},
	}

	solved := map[string]struct{}{}
	for _, submission := range submissions {
		profile.TotalSubmissions++
		profile.Languages[submission.Language]++
		if submission.IsAccepted() {
			profile.Accepted++
			profile.TotalPoints += submission.Points
			solved[submission.ProblemID] = struct{}{}
		}
	}
	profile.SolvedProblems = len(solved)
	profile.AcceptanceRate = roundedPercentage(profile.Accepted, profile.TotalSubmissions)

	recent := submissions
	if len(recent) > recentSubmissionCount {
		recent = recent[:recentSubmissionCount]
	}
	profile.Recent = make([]dto.SubmissionResponse, 0, len(recent))
	for _, submission := range recent {
		profile.Recent = append(profile.Recent, dto.NewSubmissionResponse(submission))
	}

	rank, err := s.personalRank(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	profile.Rank = rank

	return profile, nil
}

// Leaderboard ranks users over their accepted submissions within the
// timeframe. Ordering: distinct solved problems descending, then total
// points descending, then average execution time ascending.
func (s *statsService) Leaderboard(ctx context.Context, timeframe string, limit int) (dto.LeaderboardResponse, error) {
	if timeframe != TimeframeWeek && timeframe != TimeframeMonth {
		timeframe = TimeframeAll
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%d", timeframe, limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.LeaderboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("timeframe", timeframe).Msg("leaderboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	entries, err := s.rankedEntries(ctx, timeframe)
	if err != nil {
		return dto.LeaderboardResponse{}, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	response := dto.LeaderboardResponse{Timeframe: timeframe, Entries: entries}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return response, nil
}

// personalRank is the user's 1-based position on the all-time leaderboard,
// found by linear scan. Zero means the user has no accepted submissions.
func (s *statsService) personalRank(ctx context.Context, userID string) (int, error) {
	entries, err := s.rankedEntries(ctx, TimeframeAll)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if entry.UserID == userID {
			return entry.Rank, nil
		}
	}
	return 0, nil
}

func (s *statsService) rankedEntries(ctx context.Context, timeframe string) ([]dto.LeaderboardEntry, error) {
	filter := repository.SubmissionFilter{Status: models.SubmissionStatusAccepted}
	if cutoff, ok := timeframeCutoff(timeframe, s.now()); ok {
		filter.Since = &cutoff
	}

	accepted, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	type rollup struct {
		solved      map[string]struct{}
		submissions int
		points      int
		totalTimeMs int64
	}

	rollups := map[string]*rollup{}
	order := make([]string, 0)
	for _, submission := range accepted {
		agg, ok := rollups[submission.UserID]
		if !ok {
			agg = &rollup{solved: map[string]struct{}{}}
			rollups[submission.UserID] = agg
			order = append(order, submission.UserID)
		}
		agg.solved[submission.ProblemID] = struct{}{}
		agg.submissions++
		agg.points += submission.Points
		agg.totalTimeMs += submission.ExecutionTimeMs
	}

	usernames, err := s.usernamesFor(ctx, order)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rollups))
	for _, userID := range order {
		agg := rollups[userID]
		avg := 0
		if agg.submissions > 0 {
			avg = int(math.Round(float64(agg.totalTimeMs) / float64(agg.submissions)))
		}
		entries = append(entries, dto.LeaderboardEntry{
			UserID:             userID,
			Username:           usernames[userID],
			SolvedProblems:     len(agg.solved),
			TotalSubmissions:   agg.submissions,
			TotalPoints:        agg.points,
			AvgExecutionTimeMs: avg,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].SolvedProblems != entries[j].SolvedProblems {
			return entries[i].SolvedProblems > entries[j].SolvedProblems
		}
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].AvgExecutionTimeMs < entries[j].AvgExecutionTimeMs
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func (s *statsService) usernamesFor(ctx context.Context, userIDs []string) (map[string]string, error) {
	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	usernames := make(map[string]string, len(users))
	for _, user := range users {
		usernames[user.ID] = user.Username()
	}
	return usernames, nil
}

func timeframeCutoff(timeframe string, now time.Time) (time.Time, bool) {
	switch timeframe {
	case TimeframeWeek:
		return now.AddDate(0, 0, -7), true
	case TimeframeMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

func roundedPercentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

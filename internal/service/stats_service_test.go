package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/codearena-go-api/internal/models"
)

type stubUserRepo struct {
	users map[string]models.User
}

func newStubUserRepo(users ...models.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[string]models.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	s.users[user.ID] = *user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) ListByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var result []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func acceptedSubmission(userID, problemID string, points int, execMs int64, createdAt time.Time) models.Submission {
	return models.Submission{
		ID:              userID + "-" + problemID + "-" + createdAt.Format(time.RFC3339Nano),
		UserID:          userID,
		ProblemID:       problemID,
		Language:        models.LanguagePython,
		TotalTests:      3,
		PassedTests:     3,
		ExecutionTimeMs: execMs,
		Status:          models.SubmissionStatusAccepted,
		Points:          points,
		CreatedAt:       createdAt,
	}
}

func seedUsers() *stubUserRepo {
	return newStubUserRepo(
		models.User{ID: "u1", Email: "alice@example.com"},
		models.User{ID: "u2", Email: "bob@example.com"},
		models.User{ID: "u3", Email: "carol@example.com"},
	)
}

func TestLeaderboardSolvedCountDominatesPoints(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubSubmissionRepo{}

	// u1: 5 solved, 100 points. u2: 5 solved, 120 points. u3: 3 solved,
	// 500 points. Solved count dominates, points break the tie.
	problems := []string{"p1", "p2", "p3", "p4", "p5"}
	for i, problem := range problems {
		repo.stored = append(repo.stored, acceptedSubmission("u1", problem, 20, 100, now.Add(time.Duration(i)*time.Second)))
		repo.stored = append(repo.stored, acceptedSubmission("u2", problem, 24, 100, now.Add(time.Duration(i)*time.Second)))
	}
	for i, points := range []int{167, 167, 166} {
		repo.stored = append(repo.stored, acceptedSubmission("u3", problems[i], points, 100, now.Add(time.Duration(i)*time.Second)))
	}

	svc := NewStatsService(repo, seedUsers(), nil, 0, zerolog.Nop())
	response, err := svc.Leaderboard(context.Background(), TimeframeAll, 10)
	require.NoError(t, err)
	require.Len(t, response.Entries, 3)

	require.Equal(t, "u2", response.Entries[0].UserID)
	require.Equal(t, "u1", response.Entries[1].UserID)
	require.Equal(t, "u3", response.Entries[2].UserID)
	require.Equal(t, 1, response.Entries[0].Rank)
	require.Equal(t, 3, response.Entries[2].Rank)
	require.Equal(t, "bob", response.Entries[0].Username)
	require.Equal(t, 120, response.Entries[0].TotalPoints)
	require.Equal(t, 500, response.Entries[2].TotalPoints)
}

func TestLeaderboardAverageTimeBreaksFullTies(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubSubmissionRepo{}
	repo.stored = append(repo.stored, acceptedSubmission("u1", "p1", 20, 400, now))
	repo.stored = append(repo.stored, acceptedSubmission("u2", "p1", 20, 150, now))

	svc := NewStatsService(repo, seedUsers(), nil, 0, zerolog.Nop())
	response, err := svc.Leaderboard(context.Background(), TimeframeAll, 10)
	require.NoError(t, err)
	require.Equal(t, "u2", response.Entries[0].UserID, "faster average wins the tie")
	require.Equal(t, 150, response.Entries[0].AvgExecutionTimeMs)
}

func TestLeaderboardTimeframeWindows(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubSubmissionRepo{}
	repo.stored = append(repo.stored, acceptedSubmission("u1", "p1", 20, 100, now.AddDate(0, 0, -10)))

	svc := NewStatsService(repo, seedUsers(), nil, 0, zerolog.Nop())
	ctx := context.Background()

	week, err := svc.Leaderboard(ctx, TimeframeWeek, 10)
	require.NoError(t, err)
	require.Empty(t, week.Entries, "10-day-old submission is outside the week window")

	month, err := svc.Leaderboard(ctx, TimeframeMonth, 10)
	require.NoError(t, err)
	require.Len(t, month.Entries, 1)

	all, err := svc.Leaderboard(ctx, TimeframeAll, 10)
	require.NoError(t, err)
	require.Len(t, all.Entries, 1)
}

func TestLeaderboardUnknownTimeframeFallsBackToAll(t *testing.T) {
	repo := &stubSubmissionRepo{}
	repo.stored = append(repo.stored, acceptedSubmission("u1", "p1", 20, 100, time.Now().UTC()))

	svc := NewStatsService(repo, seedUsers(), nil, 0, zerolog.Nop())
	response, err := svc.Leaderboard(context.Background(), "fortnight", 10)
	require.NoError(t, err)
	require.Equal(t, TimeframeAll, response.Timeframe)
	require.Len(t, response.Entries, 1)
}

func TestLeaderboardLimitAndRanks(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubSubmissionRepo{}
	repo.stored = append(repo.stored, acceptedSubmission("u1", "p1", 20, 100, now))
	repo.stored = append(repo.stored, acceptedSubmission("u2", "p1", 30, 100, now))
	repo.stored = append(repo.stored, acceptedSubmission("u3", "p1", 10, 100, now))

	svc := NewStatsService(repo, seedUsers(), nil, 0, zerolog.Nop())
	response, err := svc.Leaderboard(context.Background(), TimeframeAll, 2)
	require.NoError(t, err)
	require.Len(t, response.Entries, 2)
	require.Equal(t, "u2", response.Entries[0].UserID)
	require.Equal(t, 2, response.Entries[1].Rank)
}

func TestLeaderboardUsesRedisCache(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	now := time.Now().UTC()
	repo := &stubSubmissionRepo{}
	repo.stored = append(repo.stored, acceptedSubmission("u1", "p1", 20, 100, now))

	svc := NewStatsService(repo, seedUsers(), client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.Leaderboard(ctx, TimeframeAll, 10)
	require.NoError(t, err)
	require.Len(t, first.Entries, 1)

	// New data is invisible until the cached entry expires.
	repo.stored = append(repo.stored, acceptedSubmission("u2", "p1", 30, 100, now))
	second, err := svc.Leaderboard(ctx, TimeframeAll, 10)
	require.NoError(t, err)
	require.Len(t, second.Entries, 1)

	server.FastForward(2 * time.Minute)
	third, err := svc.Leaderboard(ctx, TimeframeAll, 10)
	require.NoError(t, err)
	require.Len(t, third.Entries, 2)
}

func TestProfileAggregatesHistory(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubSubmissionRepo{}
	repo.stored = append(repo.stored, acceptedSubmission("u1", "p1", 25, 100, now.Add(-3*time.Hour)))
	repo.stored = append(repo.stored, acceptedSubmission("u1", "p1", 22, 200, now.Add(-2*time.Hour)))
	repo.stored = append(repo.stored, models.Submission{
		ID: "wa-1", UserID: "u1", ProblemID: "p2", Language: models.LanguageGo,
		TotalTests: 2, PassedTests: 1, Status: models.SubmissionStatusWrongAnswer,
		CreatedAt: now.Add(-time.Hour),
	})

	svc := NewStatsService(repo, seedUsers(), nil, 0, zerolog.Nop())
	profile, err := svc.Profile(context.Background(), "u1")
	require.NoError(t, err)

	require.Equal(t, "alice", profile.Username)
	require.Equal(t, 3, profile.TotalSubmissions)
	require.Equal(t, 2, profile.Accepted)
	require.Equal(t, 1, profile.SolvedProblems, "the same problem solved twice counts once")
	require.Equal(t, 67, profile.AcceptanceRate)
	require.Equal(t, 47, profile.TotalPoints)
	require.Equal(t, 2, profile.Languages[models.LanguagePython])
	require.Equal(t, 1, profile.Languages[models.LanguageGo])
	require.Len(t, profile.Recent, 3)
	require.Equal(t, "wa-1", profile.Recent[0].ID, "newest first")
	require.Equal(t, 1, profile.Rank)
}

func TestProfileRankUsesAllTimeLeaderboard(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubSubmissionRepo{}
	repo.stored = append(repo.stored, acceptedSubmission("u1", "p1", 20, 100, now))
	repo.stored = append(repo.stored, acceptedSubmission("u2", "p1", 20, 100, now))
	repo.stored = append(repo.stored, acceptedSubmission("u2", "p2", 20, 100, now))

	svc := NewStatsService(repo, seedUsers(), nil, 0, zerolog.Nop())
	profile, err := svc.Profile(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 2, profile.Rank)
}

func TestProfileWithoutSubmissions(t *testing.T) {
	svc := NewStatsService(&stubSubmissionRepo{}, seedUsers(), nil, 0, zerolog.Nop())
	profile, err := svc.Profile(context.Background(), "u3")
	require.NoError(t, err)
	require.Zero(t, profile.TotalSubmissions)
	require.Zero(t, profile.AcceptanceRate)
	require.Zero(t, profile.Rank, "no accepted submissions means no rank")
}

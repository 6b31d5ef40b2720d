package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/codearena-go-api/internal/models"
	"github.com/noah-isme/codearena-go-api/pkg/codeforces"
)

// Rating thresholds used to map a Codeforces rating onto difficulty
// tiers. Unrated problems decode with rating zero and land in the easy
// tier.
const (
	codeforcesEasyMaxRating   = 1200
	codeforcesMediumMaxRating = 1800
)

// ProblemsetFetcher is the slice of the Codeforces client the source needs.
type ProblemsetFetcher interface {
	FetchProblemset(ctx context.Context) ([]codeforces.Problem, error)
}

// CodeforcesSource pulls the whole problemset in one bulk call and derives
// difficulty locally from the numeric rating.
type CodeforcesSource struct {
	client      ProblemsetFetcher
	maxProblems int
	logger      zerolog.Logger
}

// NewCodeforcesSource builds the Codeforces source adapter.
func NewCodeforcesSource(client ProblemsetFetcher, maxProblems int, logger zerolog.Logger) *CodeforcesSource {
	if maxProblems <= 0 {
		maxProblems = 500
	}

	return &CodeforcesSource{
		client:      client,
		maxProblems: maxProblems,
		logger:      logger.With().Str("component", "codeforces_source").Logger(),
	}
}

// Name identifies the source in logs and metrics.
func (s *CodeforcesSource) Name() string {
	return models.PlatformCodeforces
}

// FetchBatch fetches and normalizes the problemset.
func (s *CodeforcesSource) FetchBatch(ctx context.Context) ([]models.Problem, error) {
	upstream, err := s.client.FetchProblemset(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch problemset: %w", err)
	}

	if len(upstream) > s.maxProblems {
		upstream = upstream[:s.maxProblems]
	}

	problems := make([]models.Problem, 0, len(upstream))
	for _, problem := range upstream {
		problems = append(problems, normalizeCodeforcesProblem(problem))
	}

	return problems, nil
}

func normalizeCodeforcesProblem(problem codeforces.Problem) models.Problem {
	return models.Problem{
		ID:         fmt.Sprintf("cf-%d%s", problem.ContestID, problem.Index),
		Title:      problem.Name,
		Platform:   models.PlatformCodeforces,
		Difficulty: difficultyFromRating(problem.Rating),
		Tags:       problem.Tags,
		Link:       fmt.Sprintf("https://codeforces.com/problemset/problem/%d/%s", problem.ContestID, problem.Index),
		Rating:     problem.Rating,
	}
}

func difficultyFromRating(rating int) string {
	switch {
	case rating <= codeforcesEasyMaxRating:
		return models.DifficultyEasy
	case rating <= codeforcesMediumMaxRating:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}

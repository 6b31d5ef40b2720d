package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/codearena-go-api/internal/models"
	"github.com/noah-isme/codearena-go-api/pkg/leetcode"
)

// QuestionLister is the slice of the LeetCode client the source needs.
type QuestionLister interface {
	FetchQuestionList(ctx context.Context, skip, limit int) ([]leetcode.Question, error)
}

// LeetCodeConfig tunes the pagination behaviour of the LeetCode source.
type LeetCodeConfig struct {
	PageSize    int
	PageDelay   time.Duration
	MaxProblems int
}

// LeetCodeSource paginates the LeetCode question list in fixed-size pages,
// skipping paid-only questions and pausing politely between pages.
type LeetCodeSource struct {
	client QuestionLister
	config LeetCodeConfig
	logger zerolog.Logger
}

// NewLeetCodeSource builds the LeetCode source adapter.
func NewLeetCodeSource(client QuestionLister, cfg LeetCodeConfig, logger zerolog.Logger) *LeetCodeSource {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.MaxProblems <= 0 {
		cfg.MaxProblems = 500
	}

	return &LeetCodeSource{
		client: client,
		config: cfg,
		logger: logger.With().Str("component", "leetcode_source").Logger(),
	}
}

// Name identifies the source in logs and metrics.
func (s *LeetCodeSource) Name() string {
	return models.PlatformLeetCode
}

// FetchBatch walks the question list page by page. A short page means the
// end of the list; a failed page call means the endpoint is likely
// blocking us, so the walk stops there and whatever was collected so far
// is returned. Only a failure on the very first page counts as a source
// failure.
func (s *LeetCodeSource) FetchBatch(ctx context.Context) ([]models.Problem, error) {
	problems := make([]models.Problem, 0, s.config.MaxProblems)
	skip := 0

	for len(problems) < s.config.MaxProblems {
		questions, err := s.client.FetchQuestionList(ctx, skip, s.config.PageSize)
		if err != nil {
			if len(problems) == 0 {
				return nil, fmt.Errorf("fetch question list: %w", err)
			}
			s.logger.Warn().Err(err).Int("skip", skip).Msg("question list page failed, stopping pagination")
			break
		}

		for _, question := range questions {
			if question.PaidOnly {
				continue
			}
			problems = append(problems, normalizeQuestion(question))
		}

		if len(questions) < s.config.PageSize {
			break
		}
		skip += s.config.PageSize

		if s.config.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return problems, nil
			case <-time.After(s.config.PageDelay):
			}
		}
	}

	if len(problems) > s.config.MaxProblems {
		problems = problems[:s.config.MaxProblems]
	}

	return problems, nil
}

func normalizeQuestion(question leetcode.Question) models.Problem {
	tags := make([]string, 0, len(question.TopicTags))
	for _, tag := range question.TopicTags {
		if tag.Name != "" {
			tags = append(tags, tag.Name)
		}
	}

	return models.Problem{
		ID:         "lc-" + question.TitleSlug,
		Title:      question.Title,
		Platform:   models.PlatformLeetCode,
		Difficulty: question.Difficulty,
		Tags:       tags,
		Acceptance: question.AcRate,
		Link:       "https://leetcode.com/problems/" + question.TitleSlug + "/",
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/codearena-go-api/internal/catalog"
	"github.com/noah-isme/codearena-go-api/internal/dto"
	"github.com/noah-isme/codearena-go-api/internal/models"
	"github.com/noah-isme/codearena-go-api/pkg/leetcode"
)

// DefaultProblemLimit caps list responses when the caller supplies none.
const DefaultProblemLimit = 500

// facetTagCap bounds the distinct-tag facet.
const facetTagCap = 100

// ErrProblemNotFound indicates the requested problem id is unknown.
var ErrProblemNotFound = errors.New("problem not found")

// DetailFetcher is the slice of the LeetCode client used for live
// statement lookups.
type DetailFetcher interface {
	FetchQuestionDetail(ctx context.Context, titleSlug string) (leetcode.QuestionDetail, error)
}

// ProblemService serves reads over the catalog snapshot and live problem
// detail lookups.
type ProblemService interface {
	List(ctx context.Context, filter dto.ProblemFilter) (dto.ProblemListResponse, error)
	Refresh(ctx context.Context) dto.RefreshResponse
	Detail(ctx context.Context, id string) (dto.ProblemDetailResponse, error)
}

type problemService struct {
	cache  *catalog.Cache
	detail DetailFetcher
	logger zerolog.Logger
}

// NewProblemService constructs the problem query service.
func NewProblemService(cache *catalog.Cache, detail DetailFetcher, logger zerolog.Logger) ProblemService {
	return &problemService{
		cache:  cache,
		detail: detail,
		logger: logger.With().Str("component", "problem_service").Logger(),
	}
}

// List filters the snapshot. Filter dimensions compose with AND; the
// result is truncated to the limit after filtering; facets are computed
// over the full filtered set.
func (s *problemService) List(ctx context.Context, filter dto.ProblemFilter) (dto.ProblemListResponse, error) {
	snapshot := s.cache.Snapshot(ctx)

	filtered := make([]models.Problem, 0, len(snapshot))
	for _, problem := range snapshot {
		if matchesFilter(problem, filter) {
			filtered = append(filtered, problem)
		}
	}

	facets := computeFacets(filtered)

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultProblemLimit
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return dto.ProblemListResponse{
		Problems: filtered,
		Total:    len(filtered),
		Facets:   facets,
	}, nil
}

// Refresh forces a snapshot rebuild and reports the new size.
func (s *problemService) Refresh(ctx context.Context) dto.RefreshResponse {
	snapshot := s.cache.Refresh(ctx)
	return dto.RefreshResponse{Count: len(snapshot)}
}

// Detail fetches the full statement for one problem. LeetCode statements
// are fetched live over GraphQL; Codeforces exposes no statement API, so
// the detail is assembled from the snapshot entry and its canonical link.
func (s *problemService) Detail(ctx context.Context, id string) (dto.ProblemDetailResponse, error) {
	switch {
	case strings.HasPrefix(id, "lc-"):
		return s.leetcodeDetail(ctx, id)
	case strings.HasPrefix(id, "cf-"):
		return s.codeforcesDetail(ctx, id)
	default:
		return dto.ProblemDetailResponse{}, ErrProblemNotFound
	}
}

func (s *problemService) leetcodeDetail(ctx context.Context, id string) (dto.ProblemDetailResponse, error) {
	slug := strings.TrimPrefix(id, "lc-")

	upstream, err := s.detail.FetchQuestionDetail(ctx, slug)
	if err != nil {
		s.logger.Warn().Err(err).Str("problem_id", id).Msg("problem detail fetch failed")
		return dto.ProblemDetailResponse{}, fmt.Errorf("fetch problem detail: %w", err)
	}

	starter := make(map[string]string, len(upstream.CodeSnippets))
	for _, snippet := range upstream.CodeSnippets {
		starter[snippet.LangSlug] = snippet.Code
	}

	testCases := make([]models.TestCase, 0, len(upstream.ExampleTestcaseList))
	for _, input := range upstream.ExampleTestcaseList {
		testCases = append(testCases, models.TestCase{Input: input})
	}

	detail := models.ProblemDetail{
		Problem: models.Problem{
			ID:         id,
			Title:      upstream.Title,
			Platform:   models.PlatformLeetCode,
			Difficulty: upstream.Difficulty,
			Link:       "https://leetcode.com/problems/" + slug + "/",
		},
		Description: upstream.Content,
		StarterCode: starter,
		TestCases:   testCases,
		Hints:       upstream.Hints,
	}

	if cached, ok := s.findInSnapshot(ctx, id); ok {
		detail.Tags = cached.Tags
		detail.Acceptance = cached.Acceptance
	}

	return dto.ProblemDetailResponse{ProblemDetail: detail}, nil
}

func (s *problemService) codeforcesDetail(ctx context.Context, id string) (dto.ProblemDetailResponse, error) {
	cached, ok := s.findInSnapshot(ctx, id)
	if !ok {
		return dto.ProblemDetailResponse{}, ErrProblemNotFound
	}

	detail := models.ProblemDetail{
		Problem:     cached,
		Description: fmt.Sprintf("Full statement available on Codeforces: %s", cached.Link),
		StarterCode: map[string]string{},
	}

	return dto.ProblemDetailResponse{ProblemDetail: detail}, nil
}

func (s *problemService) findInSnapshot(ctx context.Context, id string) (models.Problem, bool) {
	for _, problem := range s.cache.Snapshot(ctx) {
		if problem.ID == id {
			return problem, true
		}
	}
	return models.Problem{}, false
}

func matchesFilter(problem models.Problem, filter dto.ProblemFilter) bool {
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		if !strings.Contains(strings.ToLower(problem.Title), search) && !anyTagContains(problem.Tags, search) {
			return false
		}
	}

	if difficulty := strings.TrimSpace(filter.Difficulty); difficulty != "" && !strings.EqualFold(difficulty, "All") {
		if !strings.EqualFold(problem.Difficulty, difficulty) {
			return false
		}
	}

	if len(filter.Tags) > 0 && !anyRequestedTagMatches(problem.Tags, filter.Tags) {
		return false
	}

	return true
}

func anyTagContains(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// anyRequestedTagMatches implements the OR-match: one requested tag being
// a case-insensitive substring of one problem tag is enough.
func anyRequestedTagMatches(problemTags, requested []string) bool {
	for _, want := range requested {
		needle := strings.ToLower(strings.TrimSpace(want))
		if needle == "" {
			continue
		}
		if anyTagContains(problemTags, needle) {
			return true
		}
	}
	return false
}

func computeFacets(problems []models.Problem) dto.ProblemFacets {
	facets := dto.ProblemFacets{
		Platforms:    map[string]int{},
		Difficulties: map[string]int{},
	}

	seen := map[string]struct{}{}
	for _, problem := range problems {
		facets.Platforms[problem.Platform]++
		facets.Difficulties[problem.Difficulty]++
		for _, tag := range problem.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	if len(tags) > facetTagCap {
		tags = tags[:facetTagCap]
	}
	facets.Tags = tags

	return facets
}

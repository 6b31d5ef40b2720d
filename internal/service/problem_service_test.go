package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/codearena-go-api/internal/catalog"
	"github.com/noah-isme/codearena-go-api/internal/dto"
	"github.com/noah-isme/codearena-go-api/internal/models"
	"github.com/noah-isme/codearena-go-api/pkg/leetcode"
)

type fixedSource struct {
	problems []models.Problem
}

func (s fixedSource) Name() string { return "fixed" }

func (s fixedSource) FetchBatch(ctx context.Context) ([]models.Problem, error) {
	return s.problems, nil
}

type stubDetailFetcher struct {
	detail leetcode.QuestionDetail
	err    error
	slug   string
}

func (s *stubDetailFetcher) FetchQuestionDetail(ctx context.Context, titleSlug string) (leetcode.QuestionDetail, error) {
	s.slug = titleSlug
	if s.err != nil {
		return leetcode.QuestionDetail{}, s.err
	}
	return s.detail, nil
}

func fixtureProblems() []models.Problem {
	return []models.Problem{
		{ID: "lc-two-sum", Title: "Two Sum", Platform: models.PlatformLeetCode, Difficulty: models.DifficultyEasy, Tags: []string{"Array", "Hash Table"}},
		{ID: "lc-word-ladder", Title: "Word Ladder", Platform: models.PlatformLeetCode, Difficulty: models.DifficultyHard, Tags: []string{"BFS", "String"}},
		{ID: "cf-4A", Title: "Watermelon", Platform: models.PlatformCodeforces, Difficulty: models.DifficultyEasy, Tags: []string{"math"}, Link: "https://codeforces.com/problemset/problem/4/A"},
	}
}

func newProblemService(t *testing.T, detail DetailFetcher) ProblemService {
	t.Helper()
	cache := catalog.New([]catalog.Source{fixedSource{problems: fixtureProblems()}}, zerolog.Nop())
	if detail == nil {
		detail = &stubDetailFetcher{}
	}
	return NewProblemService(cache, detail, zerolog.Nop())
}

func TestListWithoutFiltersReturnsWholeSnapshot(t *testing.T) {
	svc := newProblemService(t, nil)

	response, err := svc.List(context.Background(), dto.ProblemFilter{})
	require.NoError(t, err)
	require.Len(t, response.Problems, 3)
	require.Equal(t, 3, response.Total)
}

func TestListSearchMatchesTitleOrTag(t *testing.T) {
	svc := newProblemService(t, nil)
	ctx := context.Background()

	byTitle, err := svc.List(ctx, dto.ProblemFilter{Search: "wATERmelon"})
	require.NoError(t, err)
	require.Len(t, byTitle.Problems, 1)
	require.Equal(t, "cf-4A", byTitle.Problems[0].ID)

	byTag, err := svc.List(ctx, dto.ProblemFilter{Search: "hash"})
	require.NoError(t, err)
	require.Len(t, byTag.Problems, 1)
	require.Equal(t, "lc-two-sum", byTag.Problems[0].ID)
}

func TestListDifficultyFilter(t *testing.T) {
	svc := newProblemService(t, nil)
	ctx := context.Background()

	easy, err := svc.List(ctx, dto.ProblemFilter{Difficulty: "easy"})
	require.NoError(t, err)
	require.Len(t, easy.Problems, 2)

	all, err := svc.List(ctx, dto.ProblemFilter{Difficulty: "All"})
	require.NoError(t, err)
	require.Len(t, all.Problems, 3)
}

func TestListTagFilterIsSubstringOrMatch(t *testing.T) {
	svc := newProblemService(t, nil)

	response, err := svc.List(context.Background(), dto.ProblemFilter{Tags: []string{"hash", "bfs"}})
	require.NoError(t, err)
	require.Len(t, response.Problems, 2)
}

func TestListFiltersComposeWithAnd(t *testing.T) {
	svc := newProblemService(t, nil)

	response, err := svc.List(context.Background(), dto.ProblemFilter{Search: "sum", Difficulty: "Hard"})
	require.NoError(t, err)
	require.Empty(t, response.Problems, "no easy title survives the hard filter")
}

func TestListIsSubRelationOfSnapshot(t *testing.T) {
	svc := newProblemService(t, nil)
	ctx := context.Background()

	filters := []dto.ProblemFilter{
		{},
		{Search: "a"},
		{Difficulty: "Medium"},
		{Tags: []string{"math"}},
		{Search: "two", Difficulty: "Easy", Tags: []string{"array"}},
	}
	for _, filter := range filters {
		response, err := svc.List(ctx, filter)
		require.NoError(t, err)
		require.LessOrEqual(t, len(response.Problems), 3)
	}
}

func TestListTruncatesAfterFiltering(t *testing.T) {
	svc := newProblemService(t, nil)

	response, err := svc.List(context.Background(), dto.ProblemFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, response.Problems, 2)
	require.Equal(t, 3, response.Facets.Platforms[models.PlatformLeetCode]+response.Facets.Platforms[models.PlatformCodeforces],
		"facets cover the filtered set, not the truncated page")
}

func TestListFacets(t *testing.T) {
	svc := newProblemService(t, nil)

	response, err := svc.List(context.Background(), dto.ProblemFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, response.Facets.Platforms[models.PlatformLeetCode])
	require.Equal(t, 1, response.Facets.Platforms[models.PlatformCodeforces])
	require.Equal(t, 2, response.Facets.Difficulties[models.DifficultyEasy])
	require.Equal(t, 1, response.Facets.Difficulties[models.DifficultyHard])
	require.Contains(t, response.Facets.Tags, "Hash Table")
	require.Contains(t, response.Facets.Tags, "math")
}

func TestRefreshReportsSnapshotSize(t *testing.T) {
	svc := newProblemService(t, nil)

	response := svc.Refresh(context.Background())
	require.Equal(t, 3, response.Count)
}

func TestDetailFetchesLeetCodeLive(t *testing.T) {
	fetcher := &stubDetailFetcher{detail: leetcode.QuestionDetail{
		Title:               "Two Sum",
		Difficulty:          "Easy",
		Content:             "<p>Given an array...</p>",
		Hints:               []string{"Use a map"},
		ExampleTestcaseList: []string{"[2,7,11,15]\n9"},
		CodeSnippets:        []leetcode.CodeSnippet{{LangSlug: "python3", Code: "class Solution: ..."}},
	}}
	svc := newProblemService(t, fetcher)

	detail, err := svc.Detail(context.Background(), "lc-two-sum")
	require.NoError(t, err)
	require.Equal(t, "two-sum", fetcher.slug)
	require.Equal(t, "<p>Given an array...</p>", detail.Description)
	require.Equal(t, "class Solution: ...", detail.StarterCode["python3"])
	require.Len(t, detail.TestCases, 1)
	require.Equal(t, []string{"Array", "Hash Table"}, detail.Tags, "tags merged from the snapshot")
}

func TestDetailCodeforcesBuiltFromSnapshot(t *testing.T) {
	svc := newProblemService(t, nil)

	detail, err := svc.Detail(context.Background(), "cf-4A")
	require.NoError(t, err)
	require.Equal(t, "Watermelon", detail.Title)
	require.Contains(t, detail.Description, "https://codeforces.com/problemset/problem/4/A")
}

func TestDetailUnknownIDFails(t *testing.T) {
	svc := newProblemService(t, nil)
	ctx := context.Background()

	_, err := svc.Detail(ctx, "atcoder-abc")
	require.True(t, errors.Is(err, ErrProblemNotFound))

	_, err = svc.Detail(ctx, "cf-9999Z")
	require.True(t, errors.Is(err, ErrProblemNotFound))
}

func TestDetailPropagatesUpstreamFailure(t *testing.T) {
	fetcher := &stubDetailFetcher{err: errors.New("upstream down")}
	svc := newProblemService(t, fetcher)

	_, err := svc.Detail(context.Background(), "lc-two-sum")
	require.Error(t, err)
}

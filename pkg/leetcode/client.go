// Package leetcode is a minimal client for the LeetCode GraphQL endpoint.
// The upstream schema is treated as an unstable, untyped document: every
// optional field may be absent and decoding never fails on extras.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public GraphQL endpoint.
const DefaultBaseURL = "https://leetcode.com/graphql"

const questionListQuery = `
query problemsetQuestionList($categorySlug: String, $limit: Int, $skip: Int, $filters: QuestionListFilterInput) {
  problemsetQuestionList: questionList(categorySlug: $categorySlug, limit: $limit, skip: $skip, filters: $filters) {
    questions: data {
      title
      titleSlug
      difficulty
      acRate
      paidOnly: isPaidOnly
      topicTags { name slug }
    }
  }
}`

const questionDetailQuery = `
query questionDetail($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    title
    titleSlug
    difficulty
    content
    hints
    exampleTestcaseList
    codeSnippets { lang langSlug code }
  }
}`

// TopicTag is a tag attached to a question.
type TopicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Question is one entry of the paginated question list.
type Question struct {
	Title      string     `json:"title"`
	TitleSlug  string     `json:"titleSlug"`
	Difficulty string     `json:"difficulty"`
	AcRate     *float64   `json:"acRate"`
	PaidOnly   bool       `json:"paidOnly"`
	TopicTags  []TopicTag `json:"topicTags"`
}

// CodeSnippet is per-language starter code attached to a question.
type CodeSnippet struct {
	Lang     string `json:"lang"`
	LangSlug string `json:"langSlug"`
	Code     string `json:"code"`
}

// QuestionDetail is the full statement of a single question.
type QuestionDetail struct {
	Title               string        `json:"title"`
	TitleSlug           string        `json:"titleSlug"`
	Difficulty          string        `json:"difficulty"`
	Content             string        `json:"content"`
	Hints               []string      `json:"hints"`
	ExampleTestcaseList []string      `json:"exampleTestcaseList"`
	CodeSnippets        []CodeSnippet `json:"codeSnippets"`
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data json.RawMessage `json:"data"`
}

// Client talks to a LeetCode-shaped GraphQL endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client against the given endpoint. An empty baseURL
// selects the public endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 12 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchQuestionList returns one page of the question list.
func (c *Client) FetchQuestionList(ctx context.Context, skip, limit int) ([]Question, error) {
	variables := map[string]any{
		"categorySlug": "",
		"skip":         skip,
		"limit":        limit,
		"filters":      map[string]any{},
	}

	raw, err := c.query(ctx, questionListQuery, variables)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ProblemsetQuestionList struct {
			Questions []Question `json:"questions"`
		} `json:"problemsetQuestionList"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode question list: %w", err)
	}

	return payload.ProblemsetQuestionList.Questions, nil
}

// FetchQuestionDetail returns the full statement for a single question slug.
func (c *Client) FetchQuestionDetail(ctx context.Context, titleSlug string) (QuestionDetail, error) {
	raw, err := c.query(ctx, questionDetailQuery, map[string]any{"titleSlug": titleSlug})
	if err != nil {
		return QuestionDetail{}, err
	}

	var payload struct {
		Question *QuestionDetail `json:"question"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return QuestionDetail{}, fmt.Errorf("decode question detail: %w", err)
	}
	if payload.Question == nil {
		return QuestionDetail{}, fmt.Errorf("question %q not found", titleSlug)
	}

	return *payload.Question, nil
}

func (c *Client) query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{
		Query:     strings.ReplaceAll(query, "\n", " "),
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal graphql request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build graphql request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Referer", "https://leetcode.com")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("send graphql request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read graphql response: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphql request returned %s", response.Status)
	}

	var decoded graphqlResponse
	if err := json.Unmarshal(responseBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode graphql envelope: %w", err)
	}

	return decoded.Data, nil
}

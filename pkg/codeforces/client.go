// Package codeforces is a minimal client for the Codeforces REST API.
package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://codeforces.com/api"

// Problem is one entry of the problemset. Rating is absent for unrated
// problems and decodes to zero.
type Problem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

type problemsetResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  struct {
		Problems []Problem `json:"problems"`
	} `json:"result"`
}

// Client talks to a Codeforces-shaped REST endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client against the given API root. An empty baseURL
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

// FetchProblemset returns the full problemset in one bulk call.
func (c *Client) FetchProblemset(ctx context.Context) ([]Problem, error) {
	url := c.baseURL + "/problemset.problems"
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build problemset request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("send problemset request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("problemset request returned %s", response.Status)
	}

	var decoded problemsetResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode problemset response: %w", err)
	}

	if decoded.Status != "OK" {
		return nil, fmt.Errorf("problemset request failed: %s", decoded.Comment)
	}

	return decoded.Result.Problems, nil
}

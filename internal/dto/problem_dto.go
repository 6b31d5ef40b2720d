package dto

import "github.com/noah-isme/codearena-go-api/internal/models"

// ProblemFilter defines query parameters for listing problems.
type ProblemFilter struct {
	Search     string   `query:"search"`
	Difficulty string   `query:"difficulty"`
	Tags       []string `query:"tags"`
	Limit      int      `query:"limit"`
}

// ProblemFacets are derived count breakdowns over a filtered result set.
type ProblemFacets struct {
	Platforms    map[string]int `json:"platforms"`
	Difficulties map[string]int `json:"difficulties"`
	Tags         []string       `json:"tags"`
}

// ProblemListResponse wraps the filtered snapshot plus its facets.
type ProblemListResponse struct {
	Problems []models.Problem `json:"problems"`
	Total    int              `json:"total"`
	Facets   ProblemFacets    `json:"facets"`
}

// ProblemDetailResponse carries a live-fetched problem statement.
type ProblemDetailResponse struct {
	models.ProblemDetail
}

// RefreshResponse reports the snapshot size after a forced refresh.
type RefreshResponse struct {
	Count int `json:"count"`
}

package dto

import (
	"time"

	"github.com/noah-isme/codearena-go-api/internal/models"
)

// TestOutcomeRequest is one client-reported test result.
type TestOutcomeRequest struct {
	TestNumber      int    `json:"test_number"`
	Category        string `json:"category"`
	Input           string `json:"input"`
	Expected        string `json:"expected"`
	Output          string `json:"output"`
	Passed          bool   `json:"passed"`
	ExecutionTimeMs int64  `json:"execution_time_ms"`
}

// SubmissionRequest is the payload of a submit action. The reported
// outcomes are trusted as-is; see the judge service for the boundary.
type SubmissionRequest struct {
	ProblemID       string               `json:"problem_id" validate:"required"`
	Language        string               `json:"language" validate:"required"`
	Code            string               `json:"code" validate:"required"`
	Outcomes        []TestOutcomeRequest `json:"outcomes" validate:"dive"`
	ExecutionTimeMs int64                `json:"execution_time_ms" validate:"gte=0"`
}

// ToOutcomes converts the request outcomes to their model form.
func (r SubmissionRequest) ToOutcomes() []models.TestOutcome {
	outcomes := make([]models.TestOutcome, 0, len(r.Outcomes))
	for _, outcome := range r.Outcomes {
		outcomes = append(outcomes, models.TestOutcome{
			TestNumber:      outcome.TestNumber,
			Category:        outcome.Category,
			Input:           outcome.Input,
			Expected:        outcome.Expected,
			Output:          outcome.Output,
			Passed:          outcome.Passed,
			ExecutionTimeMs: outcome.ExecutionTimeMs,
		})
	}
	return outcomes
}

// RunningStats summarises a user's submission history so far.
type RunningStats struct {
	TotalSubmissions int `json:"total_submissions"`
	Accepted         int `json:"accepted"`
	SolvedProblems   int `json:"solved_problems"`
	AcceptanceRate   int `json:"acceptance_rate"`
}

// SubmissionResponse is one judged submission as returned by the API.
type SubmissionResponse struct {
	ID              string    `json:"id"`
	ProblemID       string    `json:"problem_id"`
	Language        string    `json:"language"`
	TotalTests      int       `json:"total_tests"`
	PassedTests     int       `json:"passed_tests"`
	ExecutionTimeMs int64     `json:"execution_time_ms"`
	Status          string    `json:"status"`
	Points          int       `json:"points"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSubmissionResponse builds a response DTO from the model.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:              submission.ID,
		ProblemID:       submission.ProblemID,
		Language:        submission.Language,
		TotalTests:      submission.TotalTests,
		PassedTests:     submission.PassedTests,
		ExecutionTimeMs: submission.ExecutionTimeMs,
		Status:          submission.Status,
		Points:          submission.Points,
		CreatedAt:       submission.CreatedAt,
	}
}

// JudgeResponse is returned by the submit endpoint: the verdict plus the
// caller's running statistics.
type JudgeResponse struct {
	Submission SubmissionResponse `json:"submission"`
	Stats      RunningStats       `json:"stats"`
}

// SubmissionHistoryResponse wraps a user's submission history.
type SubmissionHistoryResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Stats       RunningStats         `json:"stats"`
}

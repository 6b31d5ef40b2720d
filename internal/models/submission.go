package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionStatus values enumerate the verdicts a judged submission can carry.
const (
	SubmissionStatusAccepted          = "Accepted"
	SubmissionStatusWrongAnswer       = "Wrong Answer"
	SubmissionStatusRuntimeError      = "Runtime Error"
	SubmissionStatusTimeLimitExceeded = "Time Limit Exceeded"
)

// Languages accepted on submission.
const (
	LanguageJavaScript = "javascript"
	LanguagePython     = "python"
	LanguageJava       = "java"
	LanguageCPP        = "cpp"
	LanguageGo         = "go"
)

// SupportedLanguages lists the fixed language enum in display order.
var SupportedLanguages = []string{
	LanguageJavaScript,
	LanguagePython,
	LanguageJava,
	LanguageCPP,
	LanguageGo,
}

// Test categories distinguish public sample tests from hidden ones.
const (
	TestCategoryPublic = "public"
	TestCategoryHidden = "hidden"
)

// TestOutcome is one client-reported test execution result. The judge
// trusts these values as reported; nothing is re-executed server-side.
type TestOutcome struct {
	TestNumber      int    `json:"test_number"`
	Category        string `json:"category"`
	Input           string `json:"input"`
	Expected        string `json:"expected"`
	Output          string `json:"output"`
	Passed          bool   `json:"passed"`
	ExecutionTimeMs int64  `json:"execution_time_ms"`
}

// Submission is the append-only record of one judged submit action.
// It is never mutated after creation; every downstream aggregate folds
// over these rows.
type Submission struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	UserID          string         `gorm:"size:36;not null;index:idx_submissions_user_created" json:"user_id"`
	ProblemID       string         `gorm:"size:128;not null;index:idx_submissions_problem_status" json:"problem_id"`
	Language        string         `gorm:"size:32;not null" json:"language"`
	Outcomes        datatypes.JSON `gorm:"type:jsonb" json:"outcomes"`
	TotalTests      int            `gorm:"not null" json:"total_tests"`
	PassedTests     int            `gorm:"not null" json:"passed_tests"`
	ExecutionTimeMs int64          `gorm:"default:0" json:"execution_time_ms"`
	Status          string         `gorm:"size:32;not null;index:idx_submissions_problem_status" json:"status"`
	Points          int            `gorm:"default:0" json:"points"`
	CreatedAt       time.Time      `gorm:"index:idx_submissions_user_created" json:"created_at"`
}

// IsAccepted reports whether the submission passed every test.
func (s Submission) IsAccepted() bool {
	return s.Status == SubmissionStatusAccepted
}

// IsSupportedLanguage reports whether the given language is part of the
// fixed submission enum.
func IsSupportedLanguage(language string) bool {
	for _, supported := range SupportedLanguages {
		if language == supported {
			return true
		}
	}
	return false
}

package models

// Platform values identify the upstream source of a catalog entry.
const (
	PlatformLeetCode   = "leetcode"
	PlatformCodeforces = "codeforces"
)

// Difficulty tiers shared by every platform after normalization.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Problem is one normalized catalog entry. The catalog is held in memory
// only; problems are never persisted, which is why there are no gorm tags.
type Problem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Platform   string   `json:"platform"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
	Acceptance *float64 `json:"acceptance,omitempty"`
	Link       string   `json:"link"`
	Rating     int      `json:"rating,omitempty"`
}

// TestCase is one sample test shipped with a problem statement.
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected,omitempty"`
}

// ProblemDetail extends a catalog entry with the full statement, starter
// code keyed by language slug, sample tests, and hints.
type ProblemDetail struct {
	Problem
	Description string            `json:"description"`
	StarterCode map[string]string `json:"starter_code"`
	TestCases   []TestCase        `json:"test_cases"`
	Hints       []string          `json:"hints,omitempty"`
}

package dto

// ProfileResponse is the per-user statistics rollup.
type ProfileResponse struct {
	UserID           string               `json:"user_id"`
	Username         string               `json:"username"`
	TotalSubmissions int                  `json:"total_submissions"`
	Accepted         int                  `json:"accepted"`
	SolvedProblems   int                  `json:"solved_problems"`
	AcceptanceRate   int                  `json:"acceptance_rate"`
	TotalPoints      int                  `json:"total_points"`
	Languages        map[string]int       `json:"languages"`
	Recent           []SubmissionResponse `json:"recent"`
	Rank             int                  `json:"rank"`
}

// LeaderboardEntry is one ranked row of the global leaderboard. It is
// derived on every query, never stored.
type LeaderboardEntry struct {
	UserID             string `json:"user_id"`
	Username           string `json:"username"`
	SolvedProblems     int    `json:"solved_problems"`
	TotalSubmissions   int    `json:"total_submissions"`
	TotalPoints        int    `json:"total_points"`
	AvgExecutionTimeMs int    `json:"avg_execution_time_ms"`
	Rank               int    `json:"rank"`
}

// LeaderboardResponse wraps the ranked entries for one timeframe.
type LeaderboardResponse struct {
	Timeframe string             `json:"timeframe"`
	Entries   []LeaderboardEntry `json:"entries"`
}

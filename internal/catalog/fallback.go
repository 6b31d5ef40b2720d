package catalog

import "github.com/noah-isme/codearena-go-api/internal/models"

func floatPtr(v float64) *float64 { return &v }

// fallbackProblems returns the bundled dataset served when every upstream
// source fails or returns nothing in a refresh cycle. The set is small but
// non-empty so the API keeps answering instead of serving an empty catalog.
func fallbackProblems() []models.Problem {
	return []models.Problem{
		{
			ID:         "lc-two-sum",
			Title:      "Two Sum",
			Platform:   models.PlatformLeetCode,
			Difficulty: models.DifficultyEasy,
			Tags:       []string{"Array", "Hash Table"},
			Acceptance: floatPtr(49.1),
			Link:       "https://leetcode.com/problems/two-sum/",
		},
		{
			ID:         "lc-add-two-numbers",
			Title:      "Add Two Numbers",
			Platform:   models.PlatformLeetCode,
			Difficulty: models.DifficultyMedium,
			Tags:       []string{"Linked List", "Math", "Recursion"},
			Acceptance: floatPtr(42.8),
			Link:       "https://leetcode.com/problems/add-two-numbers/",
		},
		{
			ID:         "lc-longest-substring-without-repeating-characters",
			Title:      "Longest Substring Without Repeating Characters",
			Platform:   models.PlatformLeetCode,
			Difficulty: models.DifficultyMedium,
			Tags:       []string{"Hash Table", "String", "Sliding Window"},
			Acceptance: floatPtr(34.5),
			Link:       "https://leetcode.com/problems/longest-substring-without-repeating-characters/",
		},
		{
			ID:         "lc-median-of-two-sorted-arrays",
			Title:      "Median of Two Sorted Arrays",
			Platform:   models.PlatformLeetCode,
			Difficulty: models.DifficultyHard,
			Tags:       []string{"Array", "Binary Search", "Divide and Conquer"},
			Acceptance: floatPtr(39.2),
			Link:       "https://leetcode.com/problems/median-of-two-sorted-arrays/",
		},
		{
			ID:         "cf-4A",
			Title:      "Watermelon",
			Platform:   models.PlatformCodeforces,
			Difficulty: models.DifficultyEasy,
			Tags:       []string{"brute force", "math"},
			Link:       "https://codeforces.com/problemset/problem/4/A",
			Rating:     800,
		},
		{
			ID:         "cf-1352C",
			Title:      "K-th Not Divisible by n",
			Platform:   models.PlatformCodeforces,
			Difficulty: models.DifficultyMedium,
			Tags:       []string{"binary search", "math"},
			Link:       "https://codeforces.com/problemset/problem/1352/C",
			Rating:     1200,
		},
		{
			ID:         "cf-1362D",
			Title:      "Johnny and Contribution",
			Platform:   models.PlatformCodeforces,
			Difficulty: models.DifficultyMedium,
			Tags:       []string{"constructive algorithms", "graphs", "sortings"},
			Link:       "https://codeforces.com/problemset/problem/1362/D",
			Rating:     1700,
		},
		{
			ID:         "cf-1363F",
			Title:      "Rotating Substrings",
			Platform:   models.PlatformCodeforces,
			Difficulty: models.DifficultyHard,
			Tags:       []string{"dp", "strings"},
			Link:       "https://codeforces.com/problemset/problem/1363/F",
			Rating:     2600,
		},
	}
}

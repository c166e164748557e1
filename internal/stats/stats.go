package stats

type UserStats struct {
	TodayStatus      bool    `json:"today_status"`
	DaysThisWeek     int     `json:"days_this_week"`
	DaysThisMonth    int     `json:"days_this_month"`
	TotalDaysActive  int     `json:"total_days_active"`
	TotalCompletions int     `json:"total_completions"`
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	ConsistencyScore float64 `json:"consistency_score"`
}

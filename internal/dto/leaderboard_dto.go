package dto

// Leaderboard ranking dimensions.
const (
	RankByTotal        = "total"
	RankByValue        = "value"
	RankByAchievements = "achievements"
	RankByQuiz         = "quiz"
)

// LeaderboardEntry is one ranked student row.
type LeaderboardEntry struct {
	Rank             int            `json:"rank"`
	StudentID        uint           `json:"student_id"`
	Name             string         `json:"name"`
	Grade            string         `json:"grade,omitempty"`
	Total            int            `json:"total"`
	ByValue          map[string]int `json:"by_value"`
	AchievementCount int            `json:"achievement_count"`
	QuizScore        int            `json:"quiz_score"`
}

// LeaderboardResponse is the ranked population for one dimension.
type LeaderboardResponse struct {
	Dimension string             `json:"dimension"`
	Value     string             `json:"value,omitempty"` // set when ranking by one core value
	Entries   []LeaderboardEntry `json:"entries"`
}

// TeacherActivityEntry summarises one teacher's awarding activity.
type TeacherActivityEntry struct {
	TeacherName string `json:"teacher_name"`
	StampCount  int64  `json:"stamp_count"`
}

// TeacherActivityResponse lists awarding totals across the staff.
type TeacherActivityResponse struct {
	Teachers []TeacherActivityEntry `json:"teachers"`
}

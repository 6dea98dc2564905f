package dto

import "github.com/noah-isme/passport-go-api/internal/achievement"

// StatsResponse is the value/subject breakdown of a student's stamps.
type StatsResponse struct {
	Total     int            `json:"total"`
	ByValue   map[string]int `json:"by_value"`
	BySubject map[string]int `json:"by_subject"`
}

// PassportResponse is the full evaluated passport for one student.
type PassportResponse struct {
	StudentID     uint                             `json:"student_id"`
	Stats         StatsResponse                    `json:"stats"`
	Achievements  []achievement.StudentAchievement `json:"achievements"`
	UnlockedCount int                              `json:"unlocked_count"`
	NewlyUnlocked []string                         `json:"newly_unlocked,omitempty"`
}

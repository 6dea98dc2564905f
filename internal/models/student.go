package models

import "time"

// Student represents a learner who collects stamps in their values passport.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Grade     string    `gorm:"size:16;index" json:"grade"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Teacher represents a staff member who awards stamps and reviews nominations.
type Teacher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Subject   string    `gorm:"size:64" json:"subject"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizScore stores a student's latest external values-quiz result, used as an
// optional leaderboard dimension.
type QuizScore struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"uniqueIndex;not null" json:"student_id"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

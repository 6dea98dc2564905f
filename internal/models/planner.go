package models

import "time"

// Planner item categories.
const (
	PlannerAssignment = "ASSIGNMENT"
	PlannerHomework   = "HOMEWORK"
	PlannerTask       = "TASK"
)

// PlannerItem is a student task tracked in the personal planner.
type PlannerItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"index;not null" json:"student_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Category    string    `gorm:"size:16;not null;default:TASK" json:"category"`
	DueDate     time.Time `json:"due_date"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

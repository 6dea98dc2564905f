package dto

import "time"

// CreatePlannerItemRequest adds a task to the student's planner.
type CreatePlannerItemRequest struct {
	Title    string    `json:"title" validate:"required,max=255"`
	Category string    `json:"category" validate:"required,oneof=ASSIGNMENT HOMEWORK TASK"`
	DueDate  time.Time `json:"due_date"`
}

// UpdatePlannerItemRequest patches a planner item; nil fields stay unchanged.
type UpdatePlannerItemRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=255"`
	Category    *string    `json:"category" validate:"omitempty,oneof=ASSIGNMENT HOMEWORK TASK"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
}

// PlannerItemResponse describes one planner entry.
type PlannerItemResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	DueDate     time.Time `json:"due_date"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

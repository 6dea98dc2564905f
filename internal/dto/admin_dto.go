package dto

import "time"

// UpsertStudentRequest creates or updates a roster student.
type UpsertStudentRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Grade string `json:"grade" validate:"max=16"`
}

// UpsertTeacherRequest creates or updates a roster teacher.
type UpsertTeacherRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=64"`
}

// StudentResponse describes one roster student.
type StudentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Grade     string    `json:"grade,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TeacherResponse describes one roster teacher.
type TeacherResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertQuizScoreRequest records a student's external quiz result.
type UpsertQuizScoreRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	Score     int  `json:"score" validate:"min=0"`
}

// ActivityListRequest narrows the audit trail listing.
type ActivityListRequest struct {
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
	Action     string `query:"action"`
	EntityType string `query:"entity_type"`
}

// ActivityResponse describes one audit trail entry.
type ActivityResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ActivityListResponse pages through audit trail entries.
type ActivityListResponse struct {
	Entries  []ActivityResponse `json:"entries"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// NotificationResponse describes a stored notification.
type NotificationResponse struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

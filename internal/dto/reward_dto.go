package dto

import "time"

// CriteriaRequest is the counting rule attached to a custom reward.
type CriteriaRequest struct {
	Type      string `json:"type" validate:"required,oneof=TOTAL VALUE SUBJECT_MASTERY"`
	Threshold int    `json:"threshold" validate:"required,min=1"`
	Value     string `json:"value" validate:"required_if=Type VALUE"`
	Subject   string `json:"subject" validate:"required_if=Type SUBJECT_MASTERY"`
	SubValue  string `json:"sub_value"`
}

// CreateCustomRewardRequest authors a new teacher reward.
type CreateCustomRewardRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description" validate:"max=1000"`
	Reward      string          `json:"reward" validate:"required,max=255"`
	Grades      []string        `json:"grades"`
	Subject     string          `json:"subject"`
	Criteria    CriteriaRequest `json:"criteria" validate:"required"`
}

// CustomRewardResponse describes one teacher-authored reward.
type CustomRewardResponse struct {
	ID          uint            `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Reward      string          `json:"reward"`
	Grades      []string        `json:"grades,omitempty"`
	Subject     string          `json:"subject,omitempty"`
	Criteria    CriteriaRequest `json:"criteria"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ClaimRewardRequest marks an unlocked achievement's reward as handed out.
type ClaimRewardRequest struct {
	StudentID     uint   `json:"student_id" validate:"required"`
	AchievementID string `json:"achievement_id" validate:"required"`
}

// PendingRewardResponse is one entry in the physical hand-out queue.
type PendingRewardResponse struct {
	StudentID     uint   `json:"student_id"`
	StudentName   string `json:"student_name"`
	Grade         string `json:"grade,omitempty"`
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	Reward        string `json:"reward"`
}

package dto

import "time"

// AwardSignatureRequest is a teacher's request to stamp a student's passport.
type AwardSignatureRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Value     string `json:"value" validate:"required"`
	SubValue  string `json:"sub_value"`
	Note      string `json:"note" validate:"max=500"`
}

// SignatureResponse describes one recognition event.
type SignatureResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	TeacherName string    `json:"teacher_name"`
	Subject     string    `json:"subject"`
	Value       string    `json:"value"`
	SubValue    string    `json:"sub_value,omitempty"`
	Note        string    `json:"note,omitempty"`
	AwardedAt   int64     `json:"awarded_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateNominationRequest asks for a stamp on behalf of oneself or a peer.
type CreateNominationRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Value     string `json:"value" validate:"required"`
	SubValue  string `json:"sub_value"`
	Message   string `json:"message" validate:"max=500"`
}

// ReviewNominationRequest resolves a pending nomination.
type ReviewNominationRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// NominationResponse describes one nomination and its review state.
type NominationResponse struct {
	ID            uint      `json:"id"`
	StudentID     uint      `json:"student_id"`
	NominatedByID uint      `json:"nominated_by_id"`
	Subject       string    `json:"subject"`
	Value         string    `json:"value"`
	SubValue      string    `json:"sub_value,omitempty"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"`
	ReviewedBy    string    `json:"reviewed_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

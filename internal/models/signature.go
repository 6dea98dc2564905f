package models

import "time"

// Signature is one recognition event ("stamp") in a student's passport.
// Immutable once created; only the administrative progress reset removes rows.
type Signature struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"index;not null" json:"student_id"`
	TeacherName string    `gorm:"size:255;not null" json:"teacher_name"`
	Subject     string    `gorm:"size:64;not null" json:"subject"`
	Value       string    `gorm:"size:32;not null" json:"value"`
	SubValue    string    `gorm:"size:64" json:"sub_value"`
	Note        string    `gorm:"type:text" json:"note"`
	AwardedAt   int64     `gorm:"not null" json:"awarded_at"` // epoch millis
	CreatedAt   time.Time `json:"created_at"`
}

// Nomination statuses.
const (
	NominationPending  = "PENDING"
	NominationApproved = "APPROVED"
	NominationRejected = "REJECTED"
)

// Nomination is a self or peer request for a stamp. Approval converts it 1:1
// into a Signature; rejected and pending nominations never reach the engine.
type Nomination struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentID     uint      `gorm:"index;not null" json:"student_id"` // nominee
	NominatedByID uint      `gorm:"index;not null" json:"nominated_by_id"`
	Subject       string    `gorm:"size:64;not null" json:"subject"`
	Value         string    `gorm:"size:32;not null" json:"value"`
	SubValue      string    `gorm:"size:64" json:"sub_value"`
	Message       string    `gorm:"type:text" json:"message"`
	Status        string    `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	ReviewedBy    string    `gorm:"size:255" json:"reviewed_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

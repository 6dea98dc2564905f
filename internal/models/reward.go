package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/passport-go-api/internal/catalog"
)

// ClaimedReward records that the physical reward for one unlocked achievement
// has been handed out to the student.
type ClaimedReward struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentID     uint      `gorm:"index:idx_claim_student_achievement,unique;not null" json:"student_id"`
	AchievementID string    `gorm:"index:idx_claim_student_achievement,unique;size:64;not null" json:"achievement_id"`
	ClaimedBy     string    `gorm:"size:255" json:"claimed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// CustomReward is a teacher-authored achievement definition scoped to one or
// more grades and optionally a subject. Its slug doubles as the achievement id
// seen by the evaluation engine.
type CustomReward struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Slug        string                      `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Reward      string                      `gorm:"size:255;not null" json:"reward"`
	Grades      datatypes.JSONSlice[string] `gorm:"type:json" json:"grades"`
	Subject     string                      `gorm:"size:64" json:"subject"`

	CriteriaType      string `gorm:"size:32;not null" json:"criteria_type"`
	CriteriaThreshold int    `gorm:"not null;default:1" json:"criteria_threshold"`
	CriteriaValue     string `gorm:"size:32" json:"criteria_value"`
	CriteriaSubject   string `gorm:"size:64" json:"criteria_subject"`
	CriteriaSubValue  string `gorm:"size:64" json:"criteria_sub_value"`

	CreatedBy string    `gorm:"size:255" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Definition materialises the custom reward into the shape the evaluation
// engine consumes.
func (r CustomReward) Definition() catalog.Definition {
	return catalog.Definition{
		ID:          r.Slug,
		Title:       r.Title,
		Description: r.Description,
		Reward:      r.Reward,
		Type:        catalog.EvalCustom,
		Tier:        catalog.TierSkilled,
		Criteria: &catalog.Criteria{
			Type:      catalog.EvalType(r.CriteriaType),
			Threshold: r.CriteriaThreshold,
			Value:     r.CriteriaValue,
			Subject:   r.CriteriaSubject,
			SubValue:  r.CriteriaSubValue,
		},
	}
}

// AppliesTo reports whether the reward is visible to a student in the given
// grade. An empty grade list means every grade.
func (r CustomReward) AppliesTo(grade string) bool {
	if len(r.Grades) == 0 {
		return true
	}
	for _, g := range r.Grades {
		if g == grade {
			return true
		}
	}
	return false
}

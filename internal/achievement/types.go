// Package achievement implements the passport evaluation engine: a pure,
// deterministic mapping from a student's recognition history to the progress
// and unlock state of every achievement definition. The package has no I/O and
// no shared mutable state; an Engine is safe for concurrent use.
package achievement

import (
	"time"

	"github.com/noah-isme/passport-go-api/internal/catalog"
)

// Signature is one recognition event as seen by the engine. The engine never
// mutates its input and is order-independent except where a rule explicitly
// groups by calendar day.
type Signature struct {
	ID          uint              `json:"id"`
	Subject     string            `json:"subject"`
	Value       catalog.CoreValue `json:"value"`
	SubValue    string            `json:"sub_value,omitempty"`
	TeacherName string            `json:"teacher_name"`
	Note        string            `json:"note,omitempty"`
	AwardedAt   int64             `json:"awarded_at"` // epoch millis
}

// PlannerItem is the slice of a planner record the engine cares about.
type PlannerItem struct {
	Category    string `json:"category"`
	IsCompleted bool   `json:"is_completed"`
}

// Input is one evaluation snapshot for a single student.
type Input struct {
	Signatures []Signature
	ClaimedIDs []string
	Planner    []PlannerItem
	CustomDefs []catalog.Definition
}

// StudentAchievement is the computed state of one definition for one student.
// Never persisted; recomputed on every evaluation.
type StudentAchievement struct {
	catalog.Definition
	CurrentProgress int        `json:"current_progress"`
	MaxProgress     int        `json:"max_progress"`
	IsUnlocked      bool       `json:"is_unlocked"`
	IsClaimed       bool       `json:"is_claimed"`
	UnlockedAt      *time.Time `json:"unlocked_at,omitempty"`
}

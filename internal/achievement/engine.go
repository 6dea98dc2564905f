package achievement

import (
	"time"

	"github.com/noah-isme/passport-go-api/internal/catalog"
)

// Rule computes (progress, max) for one bespoke achievement from the raw
// signature and planner collections.
type Rule func(signatures []Signature, planner []PlannerItem) (progress, max int)

// Engine evaluates achievement definitions against a student snapshot.
type Engine struct {
	defs  []catalog.Definition
	rules map[string]Rule
	loc   *time.Location
	now   func() time.Time
}

// NewEngine builds an engine over the given catalog. A nil catalog means the
// global static one. Built-in custom rules are registered at construction;
// calendar-day grouping uses the local timezone.
func NewEngine(defs []catalog.Definition) *Engine {
	if defs == nil {
		defs = catalog.Achievements
	}
	loc := time.Local

	return &Engine{
		defs:  defs,
		rules: builtinRules(loc),
		loc:   loc,
		now:   time.Now,
	}
}

// Register adds or replaces a custom rule. The id must match the definition id
// the rule evaluates.
func (e *Engine) Register(id string, rule Rule) {
	e.rules[id] = rule
}

// Evaluate computes the state of every catalog definition plus every supplied
// custom reward definition. It never fails: malformed definitions and unknown
// custom ids degrade to a locked, zero-progress result.
func (e *Engine) Evaluate(in Input) []StudentAchievement {
	claimed := make(map[string]struct{}, len(in.ClaimedIDs))
	for _, id := range in.ClaimedIDs {
		claimed[id] = struct{}{}
	}

	defs := make([]catalog.Definition, 0, len(e.defs)+len(in.CustomDefs))
	defs = append(defs, e.defs...)
	defs = append(defs, in.CustomDefs...)

	results := make([]StudentAchievement, 0, len(defs))
	for _, def := range defs {
		progress, max := e.progressFor(def, in)
		if max < 1 {
			max = 1
		}

		result := StudentAchievement{
			Definition:      def,
			CurrentProgress: progress,
			MaxProgress:     max,
			IsUnlocked:      progress >= max,
		}
		if _, ok := claimed[def.ID]; ok {
			result.IsClaimed = true
		}
		if result.IsUnlocked {
			at := e.now()
			result.UnlockedAt = &at
		}

		results = append(results, result)
	}

	return results
}

func (e *Engine) progressFor(def catalog.Definition, in Input) (int, int) {
	switch def.Type {
	case catalog.EvalTotal:
		return len(in.Signatures), def.Threshold

	case catalog.EvalValue:
		return countByValue(in.Signatures, def.Target, ""), def.Threshold

	case catalog.EvalSubjectMastery:
		return masteryLevel(in.Signatures, def.Target), def.Threshold

	case catalog.EvalFullPassport:
		return passportCoverage(in.Signatures), len(catalog.Subjects) * len(catalog.CoreValues)

	case catalog.EvalCustom:
		if rule, ok := e.rules[def.ID]; ok {
			return rule(in.Signatures, in.Planner)
		}
		if def.Criteria != nil {
			return criteriaProgress(*def.Criteria, in.Signatures)
		}
		for _, custom := range in.CustomDefs {
			if custom.ID == def.ID && custom.Criteria != nil {
				return criteriaProgress(*custom.Criteria, in.Signatures)
			}
		}
		return 0, 1

	default:
		return 0, 1
	}
}

// criteriaProgress interprets a teacher-authored criteria payload using the
// same counting logic as the static evaluation types. A VALUE criteria may
// additionally filter on an exact sub-value match.
func criteriaProgress(c catalog.Criteria, signatures []Signature) (int, int) {
	switch c.Type {
	case catalog.EvalTotal:
		return len(signatures), c.Threshold
	case catalog.EvalValue:
		return countByValue(signatures, c.Value, c.SubValue), c.Threshold
	case catalog.EvalSubjectMastery:
		return masteryLevel(signatures, c.Subject), c.Threshold
	default:
		return 0, 1
	}
}

func countByValue(signatures []Signature, value, subValue string) int {
	count := 0
	for _, sig := range signatures {
		if string(sig.Value) != value {
			continue
		}
		if subValue != "" && sig.SubValue != subValue {
			continue
		}
		count++
	}
	return count
}

// masteryLevel is the number of complete all-five-values sets earned in one
// subject: the minimum per-value signature count across the core values.
func masteryLevel(signatures []Signature, subject string) int {
	counts := make(map[catalog.CoreValue]int, len(catalog.CoreValues))
	for _, sig := range signatures {
		if sig.Subject == subject {
			counts[sig.Value]++
		}
	}

	level := 0
	for i, v := range catalog.CoreValues {
		if i == 0 || counts[v] < level {
			level = counts[v]
		}
	}
	return level
}

// passportCoverage is the number of distinct (subject, value) cells with at
// least one signature. Repeats within a cell do not count further; signatures
// outside the catalog grid are ignored.
func passportCoverage(signatures []Signature) int {
	cells := make(map[string]struct{})
	for _, sig := range signatures {
		if !catalog.IsSubject(sig.Subject) || !catalog.IsCoreValue(string(sig.Value)) {
			continue
		}
		cells[sig.Subject+"|"+string(sig.Value)] = struct{}{}
	}
	return len(cells)
}

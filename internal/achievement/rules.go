package achievement

import (
	"time"

	"github.com/noah-isme/passport-go-api/internal/catalog"
)

const hatTrickSize = 3

// builtinRules registers the bespoke counting logic behind the static CUSTOM
// achievements. Calendar-day grouping uses loc.
func builtinRules(loc *time.Location) map[string]Rule {
	rules := map[string]Rule{
		"seva-star":          sevaStar,
		"hat-trick":          hatTrick(loc),
		"subject-explorer":   distinctSubjects(3),
		"value-explorer":     distinctValues(3),
		"the-optimist":       subValueRule(2, "Optimism", "Calmness"),
		"true-friend":        subValueRule(2, "Friendship", "Kindness"),
		"future-leader":      subValueRule(3, "Leadership", "Responsibility"),
		"mindful-master":     subValueRule(2, "Focus", "Self-Discipline"),
		"guardian-of-nature": subValueRule(2, "Respect for Nature", "Care for Others"),
		"head-heart-hand":    headHeartHand,
		"planner-first":      plannerCount(1),
		"planner-10":         plannerCount(10),
		"planner-complete-5": plannerCompleted(5),
	}

	// master-<value>: the value awarded in every subject at least once.
	for _, v := range catalog.CoreValues {
		rules["master-"+kebab(string(v))] = masterOfValue(v)
	}

	return rules
}

// masterOfValue counts the distinct subjects in which value has ever been
// awarded; the same subject twice still counts once.
func masterOfValue(value catalog.CoreValue) Rule {
	return func(signatures []Signature, _ []PlannerItem) (int, int) {
		subjects := make(map[string]struct{})
		for _, sig := range signatures {
			if sig.Value == value {
				subjects[sig.Subject] = struct{}{}
			}
		}
		return len(subjects), len(catalog.Subjects)
	}
}

// sevaStar counts Love stamps earned in service settings.
func sevaStar(signatures []Signature, _ []PlannerItem) (int, int) {
	count := 0
	for _, sig := range signatures {
		if sig.Value != catalog.ValueLove {
			continue
		}
		if sig.Subject == catalog.SubjectPlayground || sig.Subject == catalog.SubjectExcursions {
			count++
		}
	}
	return count, 5
}

// hatTrick is binary: 1 when any single calendar day holds three or more
// stamps, 0 otherwise.
func hatTrick(loc *time.Location) Rule {
	return func(signatures []Signature, _ []PlannerItem) (int, int) {
		perDay := make(map[string]int)
		for _, sig := range signatures {
			day := time.UnixMilli(sig.AwardedAt).In(loc).Format("2006-01-02")
			perDay[day]++
			if perDay[day] >= hatTrickSize {
				return 1, 1
			}
		}
		return 0, 1
	}
}

func distinctSubjects(threshold int) Rule {
	return func(signatures []Signature, _ []PlannerItem) (int, int) {
		seen := make(map[string]struct{})
		for _, sig := range signatures {
			seen[sig.Subject] = struct{}{}
		}
		return len(seen), threshold
	}
}

func distinctValues(threshold int) Rule {
	return func(signatures []Signature, _ []PlannerItem) (int, int) {
		seen := make(map[catalog.CoreValue]struct{})
		for _, sig := range signatures {
			seen[sig.Value] = struct{}{}
		}
		return len(seen), threshold
	}
}

// subValueRule counts stamps whose sub-value exactly matches one of the given
// tags. Matching is case-sensitive.
func subValueRule(threshold int, tags ...string) Rule {
	return func(signatures []Signature, _ []PlannerItem) (int, int) {
		count := 0
		for _, sig := range signatures {
			for _, tag := range tags {
				if sig.SubValue == tag {
					count++
					break
				}
			}
		}
		return count, threshold
	}
}

// headHeartHand scores one point per setting category (academic, creative,
// active) touched by at least one stamp.
func headHeartHand(signatures []Signature, _ []PlannerItem) (int, int) {
	progress := 0
	for _, group := range [][]catalog.Subject{
		catalog.AcademicSubjects,
		catalog.CreativeSubjects,
		catalog.ActiveSubjects,
	} {
		if anySubject(signatures, group) {
			progress++
		}
	}
	return progress, 3
}

func anySubject(signatures []Signature, subjects []catalog.Subject) bool {
	for _, sig := range signatures {
		for _, s := range subjects {
			if sig.Subject == s {
				return true
			}
		}
	}
	return false
}

func plannerCount(threshold int) Rule {
	return func(_ []Signature, planner []PlannerItem) (int, int) {
		return len(planner), threshold
	}
}

func plannerCompleted(threshold int) Rule {
	return func(_ []Signature, planner []PlannerItem) (int, int) {
		count := 0
		for _, item := range planner {
			if item.IsCompleted {
				count++
			}
		}
		return count, threshold
	}
}

// kebab lowercases a display name into an id fragment ("Right Conduct" ->
// "right-conduct").
func kebab(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

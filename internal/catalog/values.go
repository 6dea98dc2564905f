package catalog

// CoreValue is one of the five top-level character values of the framework.
type CoreValue string

// The five core values. The set is closed; the engine treats anything
// outside it as a value that can never be earned.
const (
	ValueTruth        CoreValue = "Truth"
	ValueLove         CoreValue = "Love"
	ValuePeace        CoreValue = "Peace"
	ValueRightConduct CoreValue = "Right Conduct"
	ValueNonViolence  CoreValue = "Non-Violence"
)

// CoreValues lists every core value in display order.
var CoreValues = []CoreValue{
	ValueTruth,
	ValueLove,
	ValuePeace,
	ValueRightConduct,
	ValueNonViolence,
}

// SubValues maps each core value to its fine-grained behaviour tags. Sub-values
// are free text; matching against them is exact string equality.
var SubValues = map[CoreValue][]string{
	ValueTruth: {
		"Honesty", "Curiosity", "Integrity", "Self-Reflection", "Quest for Knowledge",
	},
	ValueLove: {
		"Kindness", "Friendship", "Compassion", "Forgiveness", "Service to Others",
	},
	ValuePeace: {
		"Calmness", "Patience", "Focus", "Optimism", "Self-Discipline",
	},
	ValueRightConduct: {
		"Responsibility", "Leadership", "Courage", "Good Manners", "Perseverance",
	},
	ValueNonViolence: {
		"Respect for Nature", "Fairness", "Cooperation", "Care for Others", "Global Awareness",
	},
}

// IsCoreValue reports whether name is one of the five core values.
func IsCoreValue(name string) bool {
	for _, v := range CoreValues {
		if string(v) == name {
			return true
		}
	}
	return false
}

package achievement

import "github.com/noah-isme/passport-go-api/internal/catalog"

// Totals is the tally of a signature collection by value and by subject.
type Totals struct {
	Total     int                       `json:"total"`
	ByValue   map[catalog.CoreValue]int `json:"by_value"`
	BySubject map[string]int            `json:"by_subject"`
}

// Stats tallies signatures in a single pass. Every core value appears in
// ByValue even when its count is zero, so chart consumers never have to
// special-case missing keys; subjects appear only once seen.
func Stats(signatures []Signature) Totals {
	totals := Totals{
		ByValue:   make(map[catalog.CoreValue]int, len(catalog.CoreValues)),
		BySubject: make(map[string]int),
	}
	for _, v := range catalog.CoreValues {
		totals.ByValue[v] = 0
	}

	for _, sig := range signatures {
		totals.Total++
		totals.ByValue[sig.Value]++
		totals.BySubject[sig.Subject]++
	}

	return totals
}

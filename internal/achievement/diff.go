package achievement

// Diff returns the achievement ids present in next but not in prev, preserving
// next's order. Callers use it to detect newly unlocked achievements between
// two evaluation snapshots; ids that disappear are ignored.
func Diff(prev, next []string) []string {
	seen := make(map[string]struct{}, len(prev))
	for _, id := range prev {
		seen[id] = struct{}{}
	}

	var fresh []string
	for _, id := range next {
		if _, ok := seen[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	return fresh
}

// UnlockedIDs extracts the ids of unlocked achievements from an evaluation
// result, preserving catalog order.
func UnlockedIDs(results []StudentAchievement) []string {
	var ids []string
	for _, r := range results {
		if r.IsUnlocked {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

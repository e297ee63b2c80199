package history

import "sort"

// Diff lists how a search result changed since an earlier run
type Diff struct {
	Added   []string
	Removed []string
}

// Empty reports whether nothing changed
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Compare diffs current against previous. A nil previous marks everything added.
func Compare(current []string, previous *Record) Diff {
	var d Diff
	if previous == nil {
		d.Added = append([]string(nil), current...)
		sort.Strings(d.Added)
		return d
	}

	prevSet := make(map[string]struct{}, len(previous.Matches))
	for _, p := range previous.Matches {
		prevSet[p] = struct{}{}
	}
	currSet := make(map[string]struct{}, len(current))
	for _, p := range current {
		currSet[p] = struct{}{}
		if _, ok := prevSet[p]; !ok {
			d.Added = append(d.Added, p)
		}
	}
	for _, p := range previous.Matches {
		if _, ok := currSet[p]; !ok {
			d.Removed = append(d.Removed, p)
		}
	}

	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	return d
}

package legal

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffPercent scores how different two snapshots are, in [0,100].
// 0 means identical, 100 means maximally different. An empty side is
// treated as a full change, which covers first publish and full deletion.
//
// The similarity ratio is 2*M/T where M is the number of characters in
// common runs and T is the total length of both snapshots, the same ratio
// Ratcliff/Obershelp matching produces.
func DiffPercent(oldSnapshot, newSnapshot string) float64 {
	if oldSnapshot == "" && newSnapshot == "" {
		return 0.0
	}
	if oldSnapshot == "" || newSnapshot == "" {
		return 100.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldSnapshot, newSnapshot, false)

	common := 0
	for _, diff := range diffs {
		if diff.Type == diffmatchpatch.DiffEqual {
			common += utf8.RuneCountInString(diff.Text)
		}
	}

	total := utf8.RuneCountInString(oldSnapshot) + utf8.RuneCountInString(newSnapshot)
	similarity := 2.0 * float64(common) / float64(total)
	return (1.0 - similarity) * 100.0
}

package legal

import "testing"

func TestNextLabelNoPreviousVersion(t *testing.T) {
	for _, diff := range []float64{0.0, 3.0, 50.0, 100.0} {
		if got := NextLabel("", diff); got != "1.0.0" {
			t.Errorf("NextLabel(no previous, %v) = %q, want 1.0.0", diff, got)
		}
	}
}

func TestNextLabelBumpBands(t *testing.T) {
	cases := []struct {
		prev string
		diff float64
		want string
	}{
		{"1.0.0", 0.0, "1.0.1"},
		{"1.0.0", 4.9, "1.0.1"},
		{"1.0.0", 5.0, "1.0.1"}, // boundary goes to the smaller bump
		{"1.0.0", 5.1, "1.1.0"},
		{"1.2.3", 10.0, "1.3.0"},
		{"1.2.3", 15.0, "1.3.0"}, // boundary goes to the smaller bump
		{"1.2.3", 15.1, "2.0.0"},
		{"3.4.5", 80.0, "4.0.0"},
		{"2.9.9", 2.0, "2.9.10"},
	}
	for _, tc := range cases {
		if got := NextLabel(tc.prev, tc.diff); got != tc.want {
			t.Errorf("NextLabel(%q, %v) = %q, want %q", tc.prev, tc.diff, got, tc.want)
		}
	}
}

func TestNextLabelUnparsableFallsBackToBase(t *testing.T) {
	cases := []struct {
		prev string
		diff float64
		want string
	}{
		{"garbage", 2.0, "1.0.1"},
		{"1.2", 2.0, "1.0.1"},
		{"1.2.3.4", 2.0, "1.0.1"},
		{"a.b.c", 10.0, "1.1.0"},
		{"1.-2.3", 50.0, "2.0.0"},
	}
	for _, tc := range cases {
		if got := NextLabel(tc.prev, tc.diff); got != tc.want {
			t.Errorf("NextLabel(%q, %v) = %q, want %q", tc.prev, tc.diff, got, tc.want)
		}
	}
}

// bumpOrder ranks labels derived from the same base so monotonicity can be
// checked: a bigger diff must never produce a smaller-order bump.
func bumpOrder(base, next string) int {
	baseMajor, baseMinor, _, _ := parseLabel(base)
	major, minor, _, _ := parseLabel(next)
	switch {
	case major > baseMajor:
		return 3
	case minor > baseMinor:
		return 2
	default:
		return 1
	}
}

func TestNextLabelMonotonicInDiff(t *testing.T) {
	const base = "2.3.4"
	diffs := []float64{0.0, 1.0, 5.0, 5.1, 10.0, 15.0, 15.1, 40.0, 100.0}
	prevOrder := 0
	for _, diff := range diffs {
		order := bumpOrder(base, NextLabel(base, diff))
		if order < prevOrder {
			t.Fatalf("bump order decreased at diff %v", diff)
		}
		prevOrder = order
	}
}

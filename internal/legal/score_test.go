package legal

import "testing"

func TestDiffPercentIdenticalSnapshots(t *testing.T) {
	cases := []string{
		"",
		"Intro\nHello",
		"Terms\nYou agree to everything.\n\nPrivacy\nWe keep nothing.",
	}
	for _, snapshot := range cases {
		if got := DiffPercent(snapshot, snapshot); got != 0.0 {
			t.Errorf("DiffPercent(identical %q) = %v, want 0.0", snapshot, got)
		}
	}
}

func TestDiffPercentOneSideEmpty(t *testing.T) {
	if got := DiffPercent("", "Intro\nHello"); got != 100.0 {
		t.Errorf("DiffPercent(empty, non-empty) = %v, want 100.0", got)
	}
	if got := DiffPercent("Intro\nHello", ""); got != 100.0 {
		t.Errorf("DiffPercent(non-empty, empty) = %v, want 100.0", got)
	}
}

func TestDiffPercentBounds(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abd"},
		{"Intro\nHello", "Intro\nHello world"},
		{"aaaa", "bbbb"},
		{"short", "a completely different and much longer text"},
	}
	for _, pair := range pairs {
		got := DiffPercent(pair[0], pair[1])
		if got < 0.0 || got > 100.0 {
			t.Errorf("DiffPercent(%q, %q) = %v, out of [0,100]", pair[0], pair[1], got)
		}
	}
}

func TestDiffPercentSmallEditScoresLow(t *testing.T) {
	old := "Intro\nHello there, welcome to our service."
	small := "Intro\nHello there, welcome to our services."
	if got := DiffPercent(old, small); got > 5.0 {
		t.Errorf("one-character edit scored %v, expected <= 5.0", got)
	}
}

func TestDiffPercentMonotonicInEditSize(t *testing.T) {
	old := "Terms of Service\nBe nice to each other and do not break anything."
	smallEdit := "Terms of Service\nBe nice to each other and do not break things."
	bigEdit := "Completely rewritten agreement\nAll prior promises are void, see appendix for details."

	small := DiffPercent(old, smallEdit)
	big := DiffPercent(old, bigEdit)
	if small >= big {
		t.Errorf("small edit scored %v, big rewrite scored %v; expected small < big", small, big)
	}
}

package legal

import (
	"testing"

	"covenant/api/internal/store"
)

func TestBuildSnapshotEmptySectionList(t *testing.T) {
	if got := BuildSnapshot(nil); got != "" {
		t.Fatalf("expected empty snapshot, got %q", got)
	}
	if got := BuildSnapshot([]store.Section{}); got != "" {
		t.Fatalf("expected empty snapshot, got %q", got)
	}
}

func TestBuildSnapshotSingleSection(t *testing.T) {
	sections := []store.Section{
		{Heading: "Intro", Body: "Hello"},
	}
	if got := BuildSnapshot(sections); got != "Intro\nHello" {
		t.Fatalf("expected %q, got %q", "Intro\nHello", got)
	}
}

func TestBuildSnapshotSeparatesSectionsWithBlankLine(t *testing.T) {
	sections := []store.Section{
		{Heading: "Intro", Body: "Hello"},
		{Heading: "Terms", Body: "You agree."},
	}
	want := "Intro\nHello\n\nTerms\nYou agree."
	if got := BuildSnapshot(sections); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildSnapshotTrimsAndSkipsEmptyParts(t *testing.T) {
	sections := []store.Section{
		{Heading: "  Intro  ", Body: "  Hello  "},
		{Heading: "", Body: "Body only"},
		{Heading: "Heading only", Body: "   "},
		{Heading: "  ", Body: ""},
	}
	want := "Intro\nHello\n\nBody only\n\nHeading only"
	if got := BuildSnapshot(sections); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildSnapshotDeterministic(t *testing.T) {
	sections := []store.Section{
		{Heading: "A", Body: "one"},
		{Heading: "B", Body: "two"},
	}
	first := BuildSnapshot(sections)
	for i := 0; i < 5; i++ {
		if got := BuildSnapshot(sections); got != first {
			t.Fatalf("snapshot not deterministic: %q vs %q", first, got)
		}
	}
}

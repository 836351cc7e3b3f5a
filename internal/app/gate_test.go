package app

import (
	"testing"

	"covenant/api/internal/config"
)

func TestAcceptanceURLPrefersExplicitConfig(t *testing.T) {
	svc := New(config.Config{AcceptanceURL: "https://example.com/legal?src=gate"}, &fakeStore{})
	if got := svc.AcceptanceURL(); got != "https://example.com/legal?src=gate" {
		t.Fatalf("expected configured URL, got %q", got)
	}
}

func TestAcceptanceURLFallsBackToNamedRoute(t *testing.T) {
	svc := newTestService(&fakeStore{})
	if got := svc.AcceptanceURL(); got != "/api/legal/accept" {
		t.Fatalf("expected named route path, got %q", got)
	}
}

func TestAcceptanceURLIgnoresWhitespaceConfig(t *testing.T) {
	svc := New(config.Config{AcceptanceURL: "   "}, &fakeStore{})
	if got := svc.AcceptanceURL(); got != "/api/legal/accept" {
		t.Fatalf("expected named route path for blank config, got %q", got)
	}
}

func TestGateRedirectAppendsNextParam(t *testing.T) {
	svc := newTestService(&fakeStore{})
	if got := svc.GateRedirect("/app/home"); got != "/api/legal/accept?next=%2Fapp%2Fhome" {
		t.Fatalf("unexpected redirect target %q", got)
	}
}

func TestGateRedirectUsesAmpersandWhenURLHasQuery(t *testing.T) {
	svc := New(config.Config{AcceptanceURL: "/legal?src=gate"}, &fakeStore{})
	if got := svc.GateRedirect("/app"); got != "/legal?src=gate&next=%2Fapp" {
		t.Fatalf("unexpected redirect target %q", got)
	}
}

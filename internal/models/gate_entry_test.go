package models

import (
	"testing"
	"time"
)

func TestApplyStampsEnteredAtOnce(t *testing.T) {
	t0 := time.Date(2025, 11, 8, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(10 * time.Minute)

	g := GateEntry{}
	g = g.Apply(true, VerificationBonafide, t0)
	if g.EnteredAt == nil || !g.EnteredAt.Equal(t0) {
		t.Fatalf("expected EnteredAt=%v, got %v", t0, g.EnteredAt)
	}
	if g.VerificationType != VerificationBonafide {
		t.Fatalf("expected verification type %q, got %q", VerificationBonafide, g.VerificationType)
	}

	// Repeated entered-write keeps the original timestamp.
	g = g.Apply(true, VerificationBonafide, t1)
	if g.EnteredAt == nil || !g.EnteredAt.Equal(t0) {
		t.Fatalf("repeated entry changed EnteredAt: got %v, want %v", g.EnteredAt, t0)
	}
}

func TestApplyClearsEnteredAtOnExit(t *testing.T) {
	t0 := time.Date(2025, 11, 8, 9, 0, 0, 0, time.UTC)

	g := GateEntry{}.Apply(true, VerificationIDCard, t0)
	g = g.Apply(false, "", t0.Add(time.Hour))
	if g.IsEntered {
		t.Fatal("expected IsEntered=false")
	}
	if g.EnteredAt != nil {
		t.Fatalf("expected EnteredAt cleared, got %v", g.EnteredAt)
	}
}

func TestApplyReentryGetsNewTimestamp(t *testing.T) {
	t0 := time.Date(2025, 11, 8, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(2 * time.Hour)

	g := GateEntry{}.Apply(true, VerificationBonafide, t0)
	g = g.Apply(false, "", t0.Add(time.Hour))
	g = g.Apply(true, VerificationBonafide, t1)
	if g.EnteredAt == nil || !g.EnteredAt.Equal(t1) {
		t.Fatalf("re-entry should stamp a new EnteredAt: got %v, want %v", g.EnteredAt, t1)
	}
}

func TestApplyKeepsVerificationTypeWhenOmitted(t *testing.T) {
	t0 := time.Now()

	g := GateEntry{}.Apply(true, VerificationBonafide, t0)
	g = g.Apply(true, "", t0)
	if g.VerificationType != VerificationBonafide {
		t.Fatalf("omitted verification type should be kept, got %q", g.VerificationType)
	}

	fresh := GateEntry{}.Apply(true, "", t0)
	if fresh.VerificationType != VerificationNone {
		t.Fatalf("fresh entry without verification should default to %q, got %q", VerificationNone, fresh.VerificationType)
	}
}

func TestAllEntered(t *testing.T) {
	now := time.Now()
	entered := Member{GateEntry: GateEntry{}.Apply(true, VerificationNone, now)}
	pending := Member{}

	if AllEntered(nil) {
		t.Fatal("empty team must not count as entered")
	}
	if AllEntered([]Member{entered, pending}) {
		t.Fatal("team with a pending member must not count as entered")
	}
	if !AllEntered([]Member{entered, entered}) {
		t.Fatal("team with every member entered must count as entered")
	}
}

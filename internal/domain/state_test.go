package domain

import (
	"testing"
	"time"
)

func TestLimitString(t *testing.T) {
	if got := FiniteLimit(5).String(); got != "5" {
		t.Fatalf("FiniteLimit(5).String() = %q, want 5", got)
	}
	if got := NoLimit.String(); got != "∞" {
		t.Fatalf("NoLimit.String() = %q, want ∞", got)
	}
}

func TestInningsScoreRendering(t *testing.T) {
	s := InningsScore{Runs: 37, Wickets: 2, Balls: 14}
	if got := s.Overs(); got != "2.2" {
		t.Fatalf("Overs() = %q, want 2.2", got)
	}
	if got := s.Line(); got != "37/2 (2.2)" {
		t.Fatalf("Line() = %q, want 37/2 (2.2)", got)
	}
}

func TestNewMatchZeroed(t *testing.T) {
	now := time.Unix(100, 0)
	m := NewMatch("id", "M1", Player{ID: "u1", Name: "Alice"}, now)

	if m.Phase != PhaseConfiguring {
		t.Fatalf("phase = %s, want configuring", m.Phase)
	}
	if m.CurrentInnings != 1 {
		t.Fatalf("current innings = %d, want 1", m.CurrentInnings)
	}
	if m.Joiner != nil {
		t.Fatalf("joiner should be absent at creation")
	}
	if m.PendingBat != nil {
		t.Fatalf("pending choice should be absent at creation")
	}
	if m.Innings[0] != (InningsScore{}) || m.Innings[1] != (InningsScore{}) {
		t.Fatalf("innings counters not zeroed")
	}
	if !m.LastActionAt.Equal(now) {
		t.Fatalf("last action = %v, want %v", m.LastActionAt, now)
	}
}

func TestPlayerLookup(t *testing.T) {
	m := NewMatch("id", "M1", Player{ID: "u1", Name: "Alice"}, time.Unix(0, 0))
	joiner := Player{ID: "u2", Name: "Bob"}
	m.Joiner = &joiner

	if p, ok := m.PlayerByID("u1"); !ok || p.Name != "Alice" {
		t.Fatalf("PlayerByID(u1) = %+v, %v", p, ok)
	}
	if p, ok := m.PlayerByID("u2"); !ok || p.Name != "Bob" {
		t.Fatalf("PlayerByID(u2) = %+v, %v", p, ok)
	}
	if _, ok := m.PlayerByID("stranger"); ok {
		t.Fatalf("unknown id should not resolve")
	}
	if got := m.Opponent("u1"); got.ID != "u2" {
		t.Fatalf("Opponent(u1) = %s, want u2", got.ID)
	}
	if got := m.Opponent("u2"); got.ID != "u1" {
		t.Fatalf("Opponent(u2) = %s, want u1", got.ID)
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range []Mode{ModeClassic, ModeQuick, ModeSurvival} {
		if !ValidMode(m) {
			t.Fatalf("%s should be valid", m)
		}
	}
	if ValidMode("test20") {
		t.Fatalf("unknown mode should be invalid")
	}
}

package session

import (
	"testing"
	"time"
)

func TestHitsUntilLost(t *testing.T) {
	s := New(DefaultConfig())
	var phases []Phase
	s.OnPhase(func(p Phase) { phases = append(phases, p) })

	for i, want := range []int{2, 1, 0} {
		if !s.Hit(30 * time.Second) {
			t.Fatalf("hit %d should take a life", i)
		}
		if s.Lives() != want {
			t.Fatalf("after hit %d expected %d lives, got %d", i, want, s.Lives())
		}
	}
	if s.Phase() != Lost {
		t.Fatalf("expected lost, got %v", s.Phase())
	}
	if len(phases) != 1 || phases[0] != Lost {
		t.Fatalf("expected one lost notification, got %v", phases)
	}

	if s.Hit(30 * time.Second) {
		t.Fatalf("hit after loss should be ignored")
	}
	if s.Lives() != 0 {
		t.Fatalf("lives changed after loss: %d", s.Lives())
	}
	if s.Expire() {
		t.Fatalf("expiry after loss must not win")
	}
}

func TestExpireWins(t *testing.T) {
	s := New(DefaultConfig())
	if !s.Expire() {
		t.Fatalf("expected win")
	}
	if s.Phase() != Won {
		t.Fatalf("expected won, got %v", s.Phase())
	}
	if s.Hit(10 * time.Second) {
		t.Fatalf("hit after win should be ignored")
	}
	if s.Lives() != 3 {
		t.Fatalf("expected 3 lives, got %d", s.Lives())
	}
	if s.Expire() {
		t.Fatalf("second expiry should be ignored")
	}
}

func TestHitGuardedByRemainingTime(t *testing.T) {
	cases := []struct {
		name      string
		remaining time.Duration
		taken     bool
	}{
		{"time_left", time.Millisecond, true},
		{"zero", 0, false},
		{"negative", -time.Millisecond, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(DefaultConfig())
			if got := s.Hit(tc.remaining); got != tc.taken {
				t.Fatalf("expected %v, got %v", tc.taken, got)
			}
			want := 3
			if tc.taken {
				want = 2
			}
			if s.Lives() != want {
				t.Fatalf("expected %d lives, got %d", want, s.Lives())
			}
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	s := New(Config{})
	if s.Config().Lives != 3 || s.Config().Duration != 60*time.Second {
		t.Fatalf("unexpected defaults: %+v", s.Config())
	}
}

func TestSecondsLeft(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      int
	}{
		{60 * time.Second, 60},
		{59*time.Second + time.Millisecond, 60},
		{59 * time.Second, 59},
		{time.Nanosecond, 1},
		{0, 0},
		{-time.Second, 0},
	}
	for _, tc := range cases {
		if got := SecondsLeft(tc.remaining); got != tc.want {
			t.Errorf("SecondsLeft(%v) = %d, want %d", tc.remaining, got, tc.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Playing.String() != "playing" || Won.String() != "won" || Lost.String() != "lost" {
		t.Fatalf("unexpected phase names")
	}
	if Playing.Terminal() || !Won.Terminal() || !Lost.Terminal() {
		t.Fatalf("unexpected terminal flags")
	}
}

package clock

import (
	"testing"
	"time"
)

func TestScheduleOneShot(t *testing.T) {
	c := New()
	fired := 0
	ev := c.Schedule(100*time.Millisecond, func() { fired++ }, false)

	c.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early")
	}
	if got := ev.Remaining(); got != time.Millisecond {
		t.Fatalf("expected 1ms remaining, got %v", got)
	}

	c.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected one firing, got %d", fired)
	}
	if ev.Active() || ev.Remaining() != 0 {
		t.Fatalf("fired one-shot should be inactive with zero remaining")
	}

	c.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("one-shot fired again")
	}
	if c.Pending() != 0 {
		t.Fatalf("expected no pending events, got %d", c.Pending())
	}
}

func TestScheduleRepeat(t *testing.T) {
	cases := []struct {
		name   string
		steps  []time.Duration
		expect int
	}{
		{"exact_periods", []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, 2},
		{"large_step_catches_up", []time.Duration{1600 * time.Millisecond}, 3},
		{"frames", framesOf(61), 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			fired := 0
			c.Schedule(500*time.Millisecond, func() { fired++ }, true)
			for _, dt := range tc.steps {
				c.Advance(dt)
			}
			if fired != tc.expect {
				t.Fatalf("expected %d firings, got %d", tc.expect, fired)
			}
		})
	}
}

func framesOf(n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = FrameDuration
	}
	return out
}

func TestOrderingByDeadline(t *testing.T) {
	c := New()
	var order []string
	c.Schedule(30*time.Millisecond, func() { order = append(order, "c") }, false)
	c.Schedule(10*time.Millisecond, func() { order = append(order, "a") }, false)
	c.Schedule(10*time.Millisecond, func() { order = append(order, "b") }, false)

	c.Advance(50 * time.Millisecond)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestCancelFreezesRemaining(t *testing.T) {
	c := New()
	ev := c.Schedule(time.Second, func() { t.Fatalf("cancelled event fired") }, false)
	c.Advance(400 * time.Millisecond)
	ev.Cancel()
	ev.Cancel()

	c.Advance(time.Second)
	if got := ev.Remaining(); got != 600*time.Millisecond {
		t.Fatalf("expected frozen 600ms, got %v", got)
	}
}

func TestRemoveAllInsideCallback(t *testing.T) {
	c := New()
	spawned := 0
	c.Schedule(500*time.Millisecond, func() { spawned++ }, true)
	c.Schedule(500*time.Millisecond, func() { c.RemoveAll() }, false)

	// Both are due at 500ms. The spawner was scheduled first and fires, the
	// second callback then clears the clock before the 1000ms tick.
	c.Advance(1200 * time.Millisecond)
	if spawned != 1 {
		t.Fatalf("expected 1 spawn before removal, got %d", spawned)
	}
	if c.Pending() != 0 {
		t.Fatalf("expected empty clock, got %d", c.Pending())
	}
}

func TestCancelledBeforeDispatchDoesNotFire(t *testing.T) {
	c := New()
	var later *Event
	c.Schedule(10*time.Millisecond, func() { later.Cancel() }, false)
	later = c.Schedule(20*time.Millisecond, func() { t.Fatalf("should not fire") }, false)

	c.Advance(30 * time.Millisecond)
	if later.Active() {
		t.Fatalf("expected cancelled event")
	}
}

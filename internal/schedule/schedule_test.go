package schedule

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManualRunsInDueOrder(t *testing.T) {
	m := NewManual()
	var order []string

	m.After(300*time.Millisecond, func() { order = append(order, "c") })
	m.After(100*time.Millisecond, func() { order = append(order, "a") })
	m.After(100*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(99 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("expected nothing before due, got %v", order)
	}

	m.Advance(time.Second)
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("unexpected order %v", order)
	}
	if m.Now() != 1099*time.Millisecond {
		t.Errorf("unexpected clock %v", m.Now())
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual()
	ran := false
	h := m.After(time.Second, func() { ran = true })

	if !h.Cancel() {
		t.Error("expected first cancel to stop the continuation")
	}
	if h.Cancel() {
		t.Error("expected second cancel to report false")
	}
	m.Advance(2 * time.Second)
	if ran {
		t.Error("cancelled continuation ran")
	}
	if m.Pending() != 0 {
		t.Errorf("expected no pending, got %d", m.Pending())
	}
}

func TestManualCancelAfterRun(t *testing.T) {
	m := NewManual()
	h := m.After(time.Millisecond, func() {})
	m.Advance(time.Millisecond)
	if h.Cancel() {
		t.Error("expected cancel after run to report false")
	}
}

func TestManualNestedScheduling(t *testing.T) {
	m := NewManual()
	var order []string

	m.After(100*time.Millisecond, func() {
		order = append(order, "outer")
		m.After(100*time.Millisecond, func() { order = append(order, "inner") })
	})

	m.Advance(150 * time.Millisecond)
	if len(order) != 1 {
		t.Fatalf("expected only outer, got %v", order)
	}
	m.Advance(50 * time.Millisecond)
	if len(order) != 2 || order[1] != "inner" {
		t.Errorf("expected inner to run at 200ms, got %v", order)
	}
}

func TestGroupCancelAll(t *testing.T) {
	m := NewManual()
	var g Group
	ran := 0

	g.Add(m.After(time.Second, func() { ran++ }))
	g.Add(m.After(2*time.Second, func() { ran++ }))
	m.After(3*time.Second, func() { ran++ })

	if g.Len() != 2 {
		t.Fatalf("expected 2 handles, got %d", g.Len())
	}
	if n := g.CancelAll(); n != 2 {
		t.Errorf("expected 2 stopped, got %d", n)
	}
	if g.Len() != 0 {
		t.Error("expected group emptied")
	}

	m.Advance(time.Minute)
	if ran != 1 {
		t.Errorf("expected only the ungrouped continuation to run, got %d", ran)
	}
}

func TestGroupAfterDropsFiredHandles(t *testing.T) {
	m := NewManual()
	var g Group
	ran := 0

	g.After(m, time.Second, func() { ran++ })
	g.After(m, 2*time.Second, func() { ran++ })
	if g.Len() != 2 {
		t.Fatalf("expected 2 handles, got %d", g.Len())
	}

	m.Advance(time.Second)
	if ran != 1 || g.Len() != 1 {
		t.Fatalf("expected 1 run and 1 handle left, got ran=%d len=%d", ran, g.Len())
	}

	if n := g.CancelAll(); n != 1 {
		t.Errorf("expected 1 stopped, got %d", n)
	}
	m.Advance(time.Minute)
	if ran != 1 {
		t.Errorf("cancelled continuation ran, ran=%d", ran)
	}
}

func TestGroupAfterWithTimer(t *testing.T) {
	var g Group
	done := make(chan struct{})
	g.After(Timer{}, time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("continuation never ran")
	}
	if g.Len() != 0 {
		t.Errorf("expected fired handle dropped, got %d", g.Len())
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	var fired atomic.Bool
	h := Timer{}.After(time.Hour, func() { fired.Store(true) })
	if !h.Cancel() {
		t.Error("expected pending timer to stop")
	}
	if fired.Load() {
		t.Error("timer fired")
	}
}

func TestTimerSchedulerFires(t *testing.T) {
	done := make(chan struct{})
	Timer{}.After(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

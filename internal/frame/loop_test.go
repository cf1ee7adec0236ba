package frame

import (
	"sync"
	"testing"

	"backdrop/internal/core"
)

func TestRequestedDuringTickRunsNextTick(t *testing.T) {
	l := NewLoop(core.Size{W: 10, H: 10})
	calls := 0
	var tick func()
	tick = func() {
		calls++
		l.RequestFrame(tick)
	}
	l.RequestFrame(tick)

	if ran := l.Tick(); ran != 1 {
		t.Fatalf("first tick ran %d callbacks, want 1", ran)
	}
	if calls != 1 {
		t.Fatalf("rescheduled callback ran within the same tick (%d calls)", calls)
	}
	l.Tick()
	l.Tick()
	if calls != 3 {
		t.Fatalf("expected 3 calls after 3 ticks, got %d", calls)
	}
	if l.Pending() != 1 {
		t.Fatalf("expected exactly one pending callback, got %d", l.Pending())
	}
}

func TestCancelFrame(t *testing.T) {
	l := NewLoop(core.Size{})
	ran := false
	id := l.RequestFrame(func() { ran = true })
	l.CancelFrame(id)
	l.CancelFrame(id)
	l.CancelFrame(0)
	l.CancelFrame(999)
	if n := l.Tick(); n != 0 || ran {
		t.Fatalf("cancelled callback ran (n=%d)", n)
	}
	if l.Pending() != 0 {
		t.Fatalf("pending=%d after cancel", l.Pending())
	}
	if l.RequestFrame(nil) != 0 {
		t.Fatal("nil callback must not be scheduled")
	}
}

func TestCancelWithinSameTick(t *testing.T) {
	l := NewLoop(core.Size{})
	secondRan := false
	var second ID
	l.RequestFrame(func() { l.CancelFrame(second) })
	second = l.RequestFrame(func() { secondRan = true })

	if n := l.Tick(); n != 1 {
		t.Fatalf("ran %d callbacks, want 1", n)
	}
	if secondRan {
		t.Fatal("callback cancelled earlier in the tick still ran")
	}
}

func TestResizeDeliveredOnTick(t *testing.T) {
	l := NewLoop(core.Size{W: 800, H: 600})
	var got []core.Size
	remove := l.OnResize(func(s core.Size) { got = append(got, s) })

	l.Resize(core.Size{W: 800, H: 600})
	l.Tick()
	if len(got) != 0 {
		t.Fatalf("unchanged size notified listeners: %v", got)
	}

	l.Resize(core.Size{W: 640, H: 480})
	l.Resize(core.Size{W: 1024, H: 768})
	if len(got) != 0 {
		t.Fatal("resize delivered before Tick")
	}
	l.Tick()
	if len(got) != 1 || got[0] != (core.Size{W: 1024, H: 768}) {
		t.Fatalf("expected one coalesced resize, got %v", got)
	}
	if l.Viewport() != (core.Size{W: 1024, H: 768}) {
		t.Fatalf("viewport=%v", l.Viewport())
	}

	remove()
	remove()
	if l.Listeners() != 0 {
		t.Fatalf("listeners=%d after remove", l.Listeners())
	}
	l.Resize(core.Size{W: 1, H: 1})
	l.Tick()
	if len(got) != 1 {
		t.Fatal("removed listener was notified")
	}
}

func TestResizeFromOtherGoroutines(t *testing.T) {
	l := NewLoop(core.Size{})
	var last core.Size
	l.OnResize(func(s core.Size) { last = s })

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Resize(core.Size{W: n, H: n})
		}(i)
	}
	wg.Wait()
	l.Tick()
	if last != l.Viewport() {
		t.Fatalf("listener saw %v, viewport is %v", last, l.Viewport())
	}
}

// Package frame provides a cooperative frame scheduler with resize
// notifications, the host-side half of a display-synchronised animation.
package frame

import (
	"slices"
	"sync"

	"backdrop/internal/core"
)

// ID identifies a requested frame callback. The zero ID is never issued.
type ID uint64

// Loop queues frame callbacks and resize events and delivers both on the
// goroutine that calls Tick. RequestFrame, CancelFrame, OnResize and Resize
// may be called from any goroutine.
type Loop struct {
	mu sync.Mutex

	nextID  ID
	pending map[ID]func()
	running map[ID]func()

	nextSub   int
	listeners map[int]func(core.Size)

	size    core.Size
	resized bool
	frames  uint64
}

// NewLoop creates a loop for a viewport of the given size.
func NewLoop(size core.Size) *Loop {
	return &Loop{
		pending:   map[ID]func(){},
		running:   map[ID]func(){},
		listeners: map[int]func(core.Size){},
		size:      size,
	}
}

// RequestFrame schedules fn to run on the next Tick.
func (l *Loop) RequestFrame(fn func()) ID {
	if fn == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.pending[l.nextID] = fn
	return l.nextID
}

// CancelFrame drops a scheduled callback. Unknown, zero and already-run IDs
// are ignored.
func (l *Loop) CancelFrame(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, id)
	delete(l.running, id)
}

// OnResize subscribes fn to viewport changes. The returned function removes
// the subscription and may be called any number of times.
func (l *Loop) OnResize(fn func(core.Size)) (remove func()) {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	l.nextSub++
	sub := l.nextSub
	l.listeners[sub] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners, sub)
			l.mu.Unlock()
		})
	}
}

// Resize records a new viewport size. Listeners observe it at the start of
// the next Tick; intermediate sizes between two ticks are coalesced.
func (l *Loop) Resize(size core.Size) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if size == l.size && !l.resized {
		return
	}
	l.size = size
	l.resized = true
}

// Viewport returns the most recently recorded viewport size.
func (l *Loop) Viewport() core.Size {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Tick delivers a pending resize, then runs every callback requested before
// the call. Callbacks requested while ticking wait for the next Tick. It
// returns the number of callbacks run.
func (l *Loop) Tick() int {
	l.mu.Lock()
	var resizeTo core.Size
	var notify []func(core.Size)
	if l.resized {
		l.resized = false
		resizeTo = l.size
		subs := make([]int, 0, len(l.listeners))
		for sub := range l.listeners {
			subs = append(subs, sub)
		}
		slices.Sort(subs)
		for _, sub := range subs {
			notify = append(notify, l.listeners[sub])
		}
	}
	l.running, l.pending = l.pending, l.running
	ids := make([]ID, 0, len(l.running))
	for id := range l.running {
		ids = append(ids, id)
	}
	l.frames++
	l.mu.Unlock()

	for _, fn := range notify {
		fn(resizeTo)
	}

	slices.Sort(ids)
	ran := 0
	for _, id := range ids {
		l.mu.Lock()
		fn, ok := l.running[id]
		delete(l.running, id)
		l.mu.Unlock()
		if !ok {
			continue
		}
		fn()
		ran++
	}
	return ran
}

// Frames returns the number of Tick calls so far.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Pending reports the number of callbacks waiting for a Tick.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending) + len(l.running)
}

// Listeners reports the number of active resize subscriptions.
func (l *Loop) Listeners() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.listeners)
}

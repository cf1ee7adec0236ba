package core

import "time"

// FixedStep paces frame callbacks at a steady frames-per-second rate while the
// host ticks at its own cadence.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given FPS.
func NewFixedStep(fps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetFPS(fps)
	fs.accumulator = fs.step
	return fs
}

// SetFPS changes the frame rate. It is safe to call from the main loop.
func (f *FixedStep) SetFPS(fps int) {
	if fps <= 0 {
		fps = 60
	}
	f.step = time.Second / time.Duration(fps)
}

// Step returns the target duration of a single frame.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the caller should advance by one frame.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		// Drop backlog after a stall instead of replaying it frame by frame.
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}

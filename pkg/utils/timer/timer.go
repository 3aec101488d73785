// Package timer provides wall-clock timing for staged CLI workflows.
package timer

import (
	"sync"
	"time"
)

// Timer tracks elapsed time for a whole command run and for the stage that is
// currently in progress.
type Timer interface {
	// Start begins timing. Calling Start again resets both measurements.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total elapsed time and the elapsed time of the
	// current stage. Both are zero until Start is called.
	GetTiming() (total, stage time.Duration)
}

type wallTimer struct {
	mu           sync.Mutex
	started      time.Time
	stageStarted time.Time
}

// New creates a Timer. The timer is inert until Start is called.
func New() Timer {
	return &wallTimer{}
}

func (t *wallTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.started = now
	t.stageStarted = now
}

func (t *wallTimer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started.IsZero() {
		return
	}

	t.stageStarted = time.Now()
}

func (t *wallTimer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started.IsZero() {
		return 0, 0
	}

	now := time.Now()

	return now.Sub(t.started), now.Sub(t.stageStarted)
}

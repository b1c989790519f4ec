// internal/jobs/status.go

// Package jobs owns job lifecycle: the SyncLog-backed runner, the in-process
// status tracker behind the health endpoint, and the three collector jobs.
package jobs

import (
	"sync"
	"time"
)

// JobType identifies one of the scheduled collector jobs.
type JobType string

const (
	JobDaily     JobType = "daily"
	JobAI        JobType = "ai"
	JobWarmCache JobType = "warm-cache"
)

// JobState is the last observed lifecycle of one job type.
type JobState struct {
	LastRun     *time.Time
	LastSuccess *time.Time
	LastError   *string
}

// StatusTracker records per-job run outcomes for the health endpoint. It is
// constructed once and injected wherever job state is read or written; there
// is deliberately no package-level instance.
type StatusTracker struct {
	mu        sync.Mutex
	startedAt time.Time
	states    map[JobType]*JobState
}

// NewStatusTracker creates a tracker with empty state for every job type.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		startedAt: time.Now(),
		states: map[JobType]*JobState{
			JobDaily:     {},
			JobAI:        {},
			JobWarmCache: {},
		},
	}
}

// RecordStart marks a run as started and clears the previous error.
func (t *StatusTracker) RecordStart(job JobType, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.state(job)
	state.LastRun = &at
	state.LastError = nil
}

// RecordSuccess marks the most recent run as successful.
func (t *StatusTracker) RecordSuccess(job JobType, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state(job).LastSuccess = &at
}

// RecordFailure records the error of the most recent run.
func (t *StatusTracker) RecordFailure(job JobType, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	msg := err.Error()
	t.state(job).LastError = &msg
}

// Uptime reports how long the tracker (and so the process) has been up.
func (t *StatusTracker) Uptime() time.Duration {
	return time.Since(t.startedAt)
}

// States returns a copy of the per-job state for safe serialization.
func (t *StatusTracker) States() map[JobType]JobState {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[JobType]JobState, len(t.states))
	for job, state := range t.states {
		out[job] = *state
	}
	return out
}

func (t *StatusTracker) state(job JobType) *JobState {
	if s, ok := t.states[job]; ok {
		return s
	}
	s := &JobState{}
	t.states[job] = s
	return s
}

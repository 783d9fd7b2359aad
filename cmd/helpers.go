package cmd

import (
	"time"
)

// ANSI color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
)

// PerformanceTimer tracks elapsed time for named phases of a command run
type PerformanceTimer struct {
	start     time.Time
	active    map[string]time.Time
	durations map[string]time.Duration
}

// NewPerformanceTimer creates a timer with the overall clock already running
func NewPerformanceTimer() *PerformanceTimer {
	return &PerformanceTimer{
		start:     time.Now(),
		active:    make(map[string]time.Time),
		durations: make(map[string]time.Duration),
	}
}

// Start begins timing a named phase
func (t *PerformanceTimer) Start(name string) {
	t.active[name] = time.Now()
}

// Stop ends a named phase and accumulates its duration
func (t *PerformanceTimer) Stop(name string) time.Duration {
	started, ok := t.active[name]
	if !ok {
		return 0
	}
	delete(t.active, name)

	d := time.Since(started)
	t.durations[name] += d
	return d
}

// Duration returns the accumulated duration for a phase
func (t *PerformanceTimer) Duration(name string) time.Duration {
	return t.durations[name]
}

// Total returns the elapsed time since the timer was created
func (t *PerformanceTimer) Total() time.Duration {
	return time.Since(t.start)
}

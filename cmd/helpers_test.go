package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceTimer(t *testing.T) {
	timer := NewPerformanceTimer()

	timer.Start("decode")
	time.Sleep(time.Millisecond)
	first := timer.Stop("decode")
	assert.Greater(t, first, time.Duration(0))

	// Repeated phases accumulate
	timer.Start("decode")
	time.Sleep(time.Millisecond)
	timer.Stop("decode")
	assert.GreaterOrEqual(t, timer.Duration("decode"), first)

	// Unknown phases are zero, stopping one is a no-op
	assert.Zero(t, timer.Duration("render"))
	assert.Zero(t, timer.Stop("render"))

	assert.GreaterOrEqual(t, timer.Total(), timer.Duration("decode"))
}

package runstats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coreward/activation-host/internal/domain/runstats"
)

func TestRunStats_UpdateActivation_Success(t *testing.T) {
	r := &runstats.RunStats{ContinuousActivationFailureCount: 3}

	r.UpdateActivation(true)

	assert.Equal(t, 1, r.ActivationCount)
	assert.Equal(t, 0, r.ContinuousActivationFailureCount)
	assert.False(t, r.LastSuccessfulActivationTime.IsZero())
}

func TestRunStats_UpdateActivation_Failure(t *testing.T) {
	r := &runstats.RunStats{}

	r.UpdateActivation(false)
	r.UpdateActivation(false)

	assert.Equal(t, 2, r.ActivationCount)
	assert.Equal(t, 2, r.ContinuousActivationFailureCount)
	assert.True(t, r.LastSuccessfulActivationTime.IsZero())
}

func TestRunStats_UpdateExit_Clean(t *testing.T) {
	r := &runstats.RunStats{ContinuousExitFailureCount: 5}

	r.UpdateExit(0)

	assert.Equal(t, 1, r.ExitCount)
	assert.Equal(t, 0, r.LastExitCode)
	assert.Equal(t, 0, r.ContinuousExitFailureCount)
	assert.False(t, r.LastSuccessfulExitTime.IsZero())
}

func TestRunStats_UpdateExit_Failure(t *testing.T) {
	r := &runstats.RunStats{}

	r.UpdateExit(1)
	r.UpdateExit(137)

	assert.Equal(t, 2, r.ExitCount)
	assert.Equal(t, 137, r.LastExitCode)
	assert.Equal(t, 2, r.ContinuousExitFailureCount)
	assert.True(t, r.LastSuccessfulExitTime.IsZero())
}

func TestRunStats_MaxContinuousFailure(t *testing.T) {
	r := &runstats.RunStats{ContinuousActivationFailureCount: 2, ContinuousExitFailureCount: 5}

	assert.Equal(t, 5, r.MaxContinuousFailure())
}

func TestRunStats_MaybeResetOnUptime(t *testing.T) {
	r := &runstats.RunStats{ContinuousActivationFailureCount: 4, ContinuousExitFailureCount: 4}

	r.MaybeResetOnUptime(30*time.Second, time.Minute)
	assert.Equal(t, 4, r.MaxContinuousFailure(), "uptime under the reset window must not reset")

	r.MaybeResetOnUptime(2*time.Minute, time.Minute)
	assert.Equal(t, 0, r.MaxContinuousFailure(), "uptime past the reset window must reset both counters")
}

package launcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreward/activation-host/internal/domain/entry"
	"github.com/coreward/activation-host/internal/domain/shared"
	"github.com/coreward/activation-host/internal/infrastructure/launcher"
)

func TestOSLauncher_Launch_RejectsEmptyCommand(t *testing.T) {
	l := launcher.New(nil)
	_, _, err := l.Launch(context.Background(), entry.Spec{})
	assert.ErrorIs(t, err, shared.ErrEmptyCommand)
}

func TestOSLauncher_Launch_StartsAndReportsExit(t *testing.T) {
	l := launcher.New(nil)
	pid, actx, err := l.Launch(context.Background(), entry.Spec{Command: "/bin/sh", Args: []string{"-c", "exit 0"}})
	require.NoError(t, err)
	assert.Greater(t, pid, 0)

	select {
	case code := <-l.Wait(actx):
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit in time")
	}
}

func TestOSLauncher_Launch_ReportsNonzeroExitCode(t *testing.T) {
	l := launcher.New(nil)
	_, actx, err := l.Launch(context.Background(), entry.Spec{Command: "/bin/sh", Args: []string{"-c", "exit 7"}})
	require.NoError(t, err)

	select {
	case code := <-l.Wait(actx):
		assert.Equal(t, 7, code)
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit in time")
	}
}

func TestOSLauncher_Terminate_StopsLongRunningChild(t *testing.T) {
	l := launcher.New(nil)
	_, actx, err := l.Launch(context.Background(), entry.Spec{Command: "/bin/sh", Args: []string{"-c", "sleep 30"}})
	require.NoError(t, err)

	require.NoError(t, l.Terminate(context.Background(), actx, false))

	select {
	case <-l.Wait(actx):
	case <-time.After(5 * time.Second):
		t.Fatal("terminated process did not exit in time")
	}
}

func TestOSLauncher_Terminate_RejectsInvalidActivationContext(t *testing.T) {
	l := launcher.New(nil)
	err := l.Terminate(context.Background(), "not-a-handle", true)
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestOSLauncher_Measure_ReturnsUsageForLiveChild(t *testing.T) {
	l := launcher.New(nil)
	_, actx, err := l.Launch(context.Background(), entry.Spec{Command: "/bin/sh", Args: []string{"-c", "sleep 2"}})
	require.NoError(t, err)
	defer l.Terminate(context.Background(), actx, false)

	m, err := l.Measure(context.Background(), actx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.MemoryBytes, int64(0))
}

type failingResolver struct{}

func (failingResolver) ResolveCredentials(username, groupname string) (uint32, uint32, error) {
	return 0, 0, errors.New("no such user")
}

func TestOSLauncher_Launch_PropagatesCredentialResolutionFailure(t *testing.T) {
	l := launcher.New(failingResolver{})
	_, _, err := l.Launch(context.Background(), entry.Spec{
		Command:   "/bin/sh",
		Args:      []string{"-c", "exit 0"},
		Principal: &entry.Principal{User: "nonexistent-user-xyz"},
	})
	assert.ErrorIs(t, err, shared.ErrLauncherFailure)
}

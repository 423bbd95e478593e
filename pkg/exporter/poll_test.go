package exporter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollUntil_ImmediateSuccess(t *testing.T) {
	got, err := pollUntil(time.Second, time.Millisecond, func() (int, bool, error) {
		return 42, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestPollUntil_SucceedsAfterRetries(t *testing.T) {
	attempts := 0
	got, err := pollUntil(time.Second, time.Millisecond, func() (string, bool, error) {
		attempts++
		if attempts < 3 {
			return "", false, nil
		}
		return "ready", true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ready", got)
	assert.Equal(t, 3, attempts)
}

func TestPollUntil_Timeout(t *testing.T) {
	attempts := 0
	_, err := pollUntil(10*time.Millisecond, time.Millisecond, func() (int, bool, error) {
		attempts++
		return 0, false, nil
	})
	require.ErrorIs(t, err, ErrPollTimeout)
	assert.Greater(t, attempts, 1)
}

func TestPollUntil_StepErrorStopsPolling(t *testing.T) {
	boom := errors.New("terminal condition")
	attempts := 0
	_, err := pollUntil(time.Second, time.Millisecond, func() (int, bool, error) {
		attempts++
		return 0, false, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestPollUntil_ZeroTimeoutRunsOnce(t *testing.T) {
	attempts := 0
	_, err := pollUntil(0, time.Millisecond, func() (int, bool, error) {
		attempts++
		return 0, false, nil
	})
	require.ErrorIs(t, err, ErrPollTimeout)
	assert.Equal(t, 1, attempts)
}

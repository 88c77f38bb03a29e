package ports

import (
	"errors"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// occupy binds an ephemeral loopback port and keeps it until the test ends.
func occupy(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", LoopbackHost+":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln.Addr().(*net.TCPAddr).Port
}

func TestFindFreePort_SkipsOccupied(t *testing.T) {
	busy := occupy(t)
	if busy+10 > MaxPort {
		t.Skip("ephemeral port too close to the top of the range")
	}

	port, err := FindFreePort(busy, 10)
	if errors.Is(err, ErrNoFreePort) {
		t.Skip("every neighbouring port is taken on this host")
	}
	require.NoError(t, err)

	assert.NotEqual(t, busy, port)
	assert.Greater(t, port, busy)
	assert.Less(t, port, busy+10)
}

func TestFindFreePort_ReturnsFirstFree(t *testing.T) {
	// Bind and release so the start of the range is known to be bindable.
	ln, err := net.Listen("tcp", LoopbackHost+":0")
	require.NoError(t, err)
	free := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	port, err := FindFreePort(free, 3)
	require.NoError(t, err)
	assert.Equal(t, free, port)
}

func TestFindFreePort_Exhausted(t *testing.T) {
	busy := occupy(t)

	port, err := FindFreePort(busy, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoFreePort)
	assert.Zero(t, port)
}

func TestFindFreePort_ReleasesPort(t *testing.T) {
	ln, err := net.Listen("tcp", LoopbackHost+":0")
	require.NoError(t, err)
	start := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	port, err := FindFreePort(start, 1)
	require.NoError(t, err)

	// The scan must not keep the port.
	again, err := net.Listen("tcp", net.JoinHostPort(LoopbackHost, strconv.Itoa(port)))
	require.NoError(t, err)
	_ = again.Close()
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		attempts int
		wantErr  bool
	}{
		{"Default", 8000, 10, false},
		{"Single Top Port", MaxPort, 1, false},
		{"Zero Start", 0, 10, true},
		{"Negative Start", -5, 10, true},
		{"Start Too High", MaxPort + 1, 1, true},
		{"Zero Attempts", 8000, 0, true},
		{"Overflow", MaxPort - 1, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.start, tt.attempts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindFreePort_InvalidRange(t *testing.T) {
	_, err := FindFreePort(0, 10)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.NotErrorIs(t, err, ErrNoFreePort)
}

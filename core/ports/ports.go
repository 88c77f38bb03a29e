package ports

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// LoopbackHost is the interface checked when scanning for a free port.
const LoopbackHost = "127.0.0.1"

const (
	MinPort = 1
	MaxPort = 65535
)

var (
	// ErrNoFreePort is returned when every port in the scanned range is taken.
	ErrNoFreePort = errors.New("no free port found")
	// ErrInvalidRange is returned for a scan range outside [MinPort, MaxPort].
	ErrInvalidRange = errors.New("invalid port range")
)

// FindFreePort returns the first port in [start, start+maxAttempts) that can be
// bound on the loopback interface. Ports are tried one at a time in ascending
// order and each test listener is closed before returning.
func FindFreePort(start, maxAttempts int) (int, error) {
	if err := ValidateRange(start, maxAttempts); err != nil {
		return 0, err
	}

	end := start + maxAttempts
	for port := start; port < end; port++ {
		if IsFree(port) {
			return port, nil
		}
	}

	return 0, fmt.Errorf("%w in range %d-%d", ErrNoFreePort, start, end-1)
}

// IsFree reports whether port can currently be bound on the loopback interface.
func IsFree(port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort(LoopbackHost, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

// ValidateRange checks that the scan range lies within the valid port space.
func ValidateRange(start, maxAttempts int) error {
	if start < MinPort || start > MaxPort {
		return fmt.Errorf("%w: start port %d out of range", ErrInvalidRange, start)
	}
	if maxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidRange, maxAttempts)
	}
	if start+maxAttempts-1 > MaxPort {
		return fmt.Errorf("%w: %d attempts from %d exceed port %d", ErrInvalidRange, maxAttempts, start, MaxPort)
	}
	return nil
}

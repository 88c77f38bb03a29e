package server

import (
	"errors"
	"fmt"

	"chartserve/core/ports"
)

var (
	// ErrInvalidRoot marks a serving directory that is missing or unreadable.
	ErrInvalidRoot = errors.New("invalid root directory")
	// ErrServerClosed is returned when starting or serving a stopped server.
	ErrServerClosed = errors.New("server closed")
	// ErrNoFreePort is returned when a port scan is exhausted.
	ErrNoFreePort = ports.ErrNoFreePort
)

// BindError reports a failure to bind the listening socket.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// RootError reports why the serving directory was rejected.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrInvalidRoot, e.Path, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidRoot) match any RootError.
func (e *RootError) Is(target error) bool { return target == ErrInvalidRoot }

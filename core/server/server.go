package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"chartserve/core/loader"
	"chartserve/core/middleware/cors"
	"chartserve/core/middleware/rayid"
	"chartserve/core/middleware/requestlog"
	"chartserve/core/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// State is the lifecycle state of a Server.
type State int

const (
	StateUnstarted State = iota
	StateListening
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateListening:
		return "listening"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Server serves a directory over HTTP with CORS headers.
type Server struct {
	cfg    Config
	root   string
	app    *fiber.App
	logger *zap.Logger

	// findPort picks a candidate port; the bind that follows may still fail.
	findPort func(start, maxAttempts int) (int, error)

	mu      sync.Mutex
	state   State
	serving bool
	ln      net.Listener
	port    int

	connMu sync.Mutex
	conns  map[net.Conn]struct{}
}

// New validates the configuration and builds the application with the given
// features. The returned server is not yet bound.
func New(cfg Config, logger *zap.Logger, features ...loader.Feature) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := cfg.ResolveRoot()
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // The CLI prints its own banner
		ErrorHandler:          errorHandler(logger),
	})

	// Order matters: the request log must see the status set by the error
	// handler, and CORS headers must be set before anything can fail.
	app.Use(rayid.New())
	app.Use(requestlog.New(logger))
	app.Use(cors.New())
	app.Use(recover.New())

	mgr := loader.NewManager()
	for _, f := range features {
		mgr.Register(f)
	}
	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		root:     root,
		app:      app,
		logger:   logger,
		findPort: ports.FindFreePort,
		conns:    make(map[net.Conn]struct{}),
	}

	srv := app.Server()
	cors.Wrap(srv)
	srv.ConnState = s.trackConn

	return s, nil
}

// Listen builds the server and binds its listening socket.
func Listen(cfg Config, logger *zap.Logger, features ...loader.Feature) (*Server, error) {
	s, err := New(cfg, logger, features...)
	if err != nil {
		return nil, err
	}
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start selects the port and binds the listening socket.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateListening:
		return nil
	case StateStopped:
		return ErrServerClosed
	}

	ln, err := s.bind()
	if err != nil {
		return err
	}

	s.ln = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.state = StateListening

	s.logger.Info("Server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("root", s.root),
	)
	return nil
}

// bind opens the listening socket. In scan mode a port reported
// free but that cannot be bound on Host is skipped like a busy one.
func (s *Server) bind() (net.Listener, error) {
	if !s.cfg.Scan {
		return listen(s.cfg.Host, s.cfg.Port)
	}

	start, end := s.cfg.Port, s.cfg.Port+s.cfg.MaxAttempts
	var lastErr error
	for port := start; port < end; {
		found, err := s.findPort(port, end-port)
		if err != nil {
			if lastErr != nil {
				return nil, fmt.Errorf("%w in range %d-%d: %w", ErrNoFreePort, start, end-1, lastErr)
			}
			return nil, err
		}

		ln, err := listen(s.cfg.Host, found)
		if err == nil {
			return ln, nil
		}
		s.logger.Debug("Port free on loopback but bind failed, trying next", zap.Error(err))
		lastErr = err
		port = found + 1
	}
	return nil, fmt.Errorf("%w in range %d-%d: %w", ErrNoFreePort, start, end-1, lastErr)
}

func listen(host string, port int) (net.Listener, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}
	return ln, nil
}

// Serve accepts connections until ctx is cancelled or the listener fails,
// then shuts the server down. Cancellation is a clean exit and returns nil,
// even when in-flight responses had to be abandoned.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateListening || s.serving {
		s.mu.Unlock()
		return ErrServerClosed
	}
	s.serving = true
	ln := s.ln
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server...")
		if err := s.Shutdown(); err != nil {
			s.logger.Warn("In-flight responses abandoned on shutdown", zap.Error(err))
		}
		return nil
	case err := <-errCh:
		if serr := s.Shutdown(); serr != nil {
			s.logger.Warn("Shutdown after listener failure", zap.Error(serr))
		}
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("listener failed: %w", err)
		}
		return nil
	}
}

// Shutdown stops accepting connections, waits up to ShutdownTimeout for
// in-flight responses and closes the socket. Connections still open after the
// wait are closed and the timeout is returned. It is safe to call repeatedly.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStopped {
		return nil
	}
	prev := s.state
	s.state = StateStopped

	if prev == StateUnstarted {
		return nil
	}

	var err error
	if s.serving {
		if s.cfg.ShutdownTimeout > 0 {
			err = s.app.ShutdownWithTimeout(s.cfg.ShutdownTimeout)
		} else {
			err = s.app.Shutdown()
		}
		if err != nil {
			s.closeConns()
		}
	}
	// fasthttp closes the listener it served on; this covers the case where
	// Serve never got that far.
	if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}

	s.logger.Info("Server stopped")
	return err
}

// trackConn follows client connections so Shutdown can drop stalled ones.
func (s *Server) trackConn(c net.Conn, state fasthttp.ConnState) {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	switch state {
	case fasthttp.StateNew:
		s.conns[c] = struct{}{}
	case fasthttp.StateClosed, fasthttp.StateHijacked:
		delete(s.conns, c)
	}
}

func (s *Server) closeConns() {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	for c := range s.conns {
		_ = c.Close()
		delete(s.conns, c)
	}
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Port returns the bound port, or 0 before Start.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// Root returns the absolute directory being served.
func (s *Server) Root() string {
	return s.root
}

// App exposes the underlying Fiber application for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// URL returns the browsable URL for path on the bound port.
func (s *Server) URL(path string) string {
	host := s.cfg.Host
	switch host {
	case "", "0.0.0.0", "::", "[::]":
		host = "localhost"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.Port())) + path
}

// errorHandler renders errors as plain text status responses. CORS headers
// are set again because server-level errors never pass through middleware.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := fiber.ErrInternalServerError.Message

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		} else {
			logger.Error("Unhandled request error",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		cors.Apply(&c.Response().Header)
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}
}

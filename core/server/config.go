package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chartserve/core/ports"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the bind address.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the port to bind, or the first port tried when Scan is set.
	Port int `mapstructure:"port" default:"8000"`
	// Scan enables probing Port, Port+1, ... for the first free port.
	Scan bool `mapstructure:"scan" default:"true"`
	// MaxAttempts is the number of ports tried when Scan is set.
	MaxAttempts int `mapstructure:"max_attempts" default:"10"`
	// Root is the directory to serve. Empty selects it from RootMode.
	Root string `mapstructure:"root" default:""`
	// RootMode selects the served directory when Root is empty (cwd, executable).
	RootMode string `mapstructure:"root_mode" default:"cwd"`
	// Open opens the landing page in the default browser after startup.
	Open bool `mapstructure:"open" default:"true"`
	// Landing is the page opened in the browser.
	Landing string `mapstructure:"landing" default:"/rainfall_charts.html"`
	// Pages lists the known pages shown in the startup banner as path=Title.
	Pages []string `mapstructure:"pages" default:"index.html=Temperature Charts,rainfall_charts.html=Rainfall Charts"`
	// ShutdownTimeout bounds how long in-flight responses may take on shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"5s"`
}

const (
	RootModeCwd        = "cwd"
	RootModeExecutable = "executable"
)

// IsValidRootMode checks if the configured root mode is valid.
func (c Config) IsValidRootMode() bool {
	switch c.RootMode {
	case RootModeCwd, RootModeExecutable:
		return true
	default:
		return false
	}
}

// Validate checks the static parts of the configuration. It does not touch
// the filesystem or the network.
func (c Config) Validate() error {
	if c.Port < ports.MinPort || c.Port > ports.MaxPort {
		return fmt.Errorf("port %d out of range [%d, %d]", c.Port, ports.MinPort, ports.MaxPort)
	}
	if c.Scan {
		if err := ports.ValidateRange(c.Port, c.MaxAttempts); err != nil {
			return err
		}
	}
	if c.Root == "" && !c.IsValidRootMode() {
		return fmt.Errorf("unknown root mode %q (want %s or %s)", c.RootMode, RootModeCwd, RootModeExecutable)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	return nil
}

// ResolveRoot returns the absolute, validated directory to serve.
func (c Config) ResolveRoot() (string, error) {
	dir := c.Root
	if dir == "" {
		var err error
		dir, err = rootFromMode(c.RootMode)
		if err != nil {
			return "", err
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &RootError{Path: dir, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &RootError{Path: abs, Err: err}
	}
	if !info.IsDir() {
		return "", &RootError{Path: abs, Err: fmt.Errorf("not a directory")}
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", &RootError{Path: abs, Err: err}
	}
	_ = f.Close()

	return abs, nil
}

func rootFromMode(mode string) (string, error) {
	switch mode {
	case RootModeCwd, "":
		dir, err := os.Getwd()
		if err != nil {
			return "", &RootError{Path: ".", Err: err}
		}
		return dir, nil
	case RootModeExecutable:
		exe, err := os.Executable()
		if err != nil {
			return "", &RootError{Path: "executable", Err: err}
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe), nil
	default:
		return "", &RootError{Path: mode, Err: fmt.Errorf("unknown root mode")}
	}
}

// Page is a known page listed in the startup banner.
type Page struct {
	Path  string
	Title string
}

// KnownPages parses Pages. Entries without a title use the path as title.
func (c Config) KnownPages() []Page {
	pages := make([]Page, 0, len(c.Pages))
	for _, entry := range c.Pages {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		path, title, ok := strings.Cut(entry, "=")
		path = strings.TrimPrefix(strings.TrimSpace(path), "/")
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			title = path
		}
		pages = append(pages, Page{Path: "/" + path, Title: title})
	}
	return pages
}

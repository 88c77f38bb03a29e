package browser

import (
	"errors"
	"fmt"
	"io"

	pkgbrowser "github.com/pkg/browser"
	"go.uber.org/zap"
)

// ErrLaunch wraps every failure to start the system browser.
var ErrLaunch = errors.New("browser launch failed")

// OpenFunc opens a URL in the user's default browser.
type OpenFunc func(url string) error

// Launcher opens URLs as a best-effort action: failures are logged, never returned.
type Launcher struct {
	open   OpenFunc
	logger *zap.Logger
}

// NewLauncher creates a launcher backed by the system browser.
func NewLauncher(logger *zap.Logger) *Launcher {
	// The launcher helpers inherit our stdout otherwise and clutter the banner.
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
	return NewLauncherWith(pkgbrowser.OpenURL, logger)
}

// NewLauncherWith creates a launcher using a custom open function.
func NewLauncherWith(open OpenFunc, logger *zap.Logger) *Launcher {
	return &Launcher{open: open, logger: logger}
}

// Open tries to open url and reports whether it succeeded.
func (l *Launcher) Open(url string) bool {
	l.logger.Info("Opening browser", zap.String("url", url))

	if err := l.launch(url); err != nil {
		l.logger.Warn("Could not open browser automatically, please open the URL manually",
			zap.String("url", url),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (l *Launcher) launch(url string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLaunch, r)
		}
	}()

	if l.open == nil {
		return fmt.Errorf("%w: no launcher configured", ErrLaunch)
	}
	if err := l.open(url); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	return nil
}

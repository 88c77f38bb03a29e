package static

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chartserve/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AllowedMethods is sent in the Allow header of 405 responses.
const AllowedMethods = "GET, HEAD, OPTIONS"

// Handler serves files from a Resolver.
type Handler struct {
	resolver *Resolver
	logger   *zap.Logger
}

// NewHandler creates a new file handler.
func NewHandler(resolver *Resolver, logger *zap.Logger) *Handler {
	return &Handler{resolver: resolver, logger: logger}
}

// RegisterRoutes registers the catch-all file route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.All("/*", h.HandleFile)
}

// HandleFile serves GET and HEAD requests for files under the root.
func (h *Handler) HandleFile(c *fiber.Ctx) error {
	method := c.Method()
	if method != fiber.MethodGet && method != fiber.MethodHead {
		c.Set(fiber.HeaderAllow, AllowedMethods)
		return fiber.ErrMethodNotAllowed
	}

	res, err := h.resolver.Resolve(c.Path())
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			logger.WithRayID(h.logger, c).Warn("Rejected path outside root", zap.String("path", c.Path()))
		}
		return err
	}

	if res.Dir && !strings.HasSuffix(c.Path(), "/") {
		// Built from the cleaned path so "//host" cannot turn into a
		// protocol-relative Location.
		target := url.URL{Path: res.Clean + "/", RawQuery: string(c.Request().URI().QueryString())}
		return c.Redirect(target.String(), fiber.StatusMovedPermanently)
	}

	f, info, err := h.resolver.Open(res)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			logger.WithRayID(h.logger, c).Warn("Refused to open file outside root", zap.String("path", c.Path()))
		}
		return err
	}

	modTime := info.ModTime().UTC().Truncate(time.Second)
	c.Set(fiber.HeaderContentType, ContentType(res.File))
	c.Set(fiber.HeaderLastModified, modTime.Format(http.TimeFormat))

	if notModified(c.Get(fiber.HeaderIfModifiedSince), modTime) {
		_ = f.Close()
		c.Status(fiber.StatusNotModified)
		return nil
	}

	size := int(info.Size())
	c.Status(fiber.StatusOK)

	if method == fiber.MethodHead {
		_ = f.Close()
		c.Response().Header.SetContentLength(size)
		return nil
	}

	// fasthttp closes the file once the body is written.
	c.Response().SetBodyStream(f, size)
	return nil
}

func notModified(header string, modTime time.Time) bool {
	if header == "" || modTime.IsZero() || modTime.Unix() <= 0 {
		return false
	}
	since, err := http.ParseTime(header)
	if err != nil {
		return false
	}
	return !modTime.After(since)
}

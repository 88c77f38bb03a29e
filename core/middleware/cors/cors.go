package cors

import (
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// Header values attached to every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type"
)

// Apply sets the CORS headers on a response header.
func Apply(h *fasthttp.ResponseHeader) {
	h.Set(fiber.HeaderAccessControlAllowOrigin, AllowOrigin)
	h.Set(fiber.HeaderAccessControlAllowMethods, AllowMethods)
	h.Set(fiber.HeaderAccessControlAllowHeaders, AllowHeaders)
}

// New creates a middleware that adds the permissive CORS headers to every
// response and answers OPTIONS preflight requests with an empty 200.
//
// Headers are set before the rest of the chain runs so they survive error
// responses produced later by the application's error handler.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		Apply(&c.Response().Header)

		if c.Method() == fiber.MethodOptions {
			// Status only; SendStatus would write the status text as body.
			c.Status(fiber.StatusOK)
			return nil
		}

		return c.Next()
	}
}

// Wrap installs the headers on a fasthttp server below Fiber's router.
// Fiber answers unknown methods and malformed requests without running any
// middleware, so New alone does not reach those responses.
func Wrap(srv *fasthttp.Server) {
	if next := srv.Handler; next != nil {
		srv.Handler = func(ctx *fasthttp.RequestCtx) {
			Apply(&ctx.Response.Header)
			next(ctx)
		}
	}
	if next := srv.ErrorHandler; next != nil {
		srv.ErrorHandler = func(ctx *fasthttp.RequestCtx, err error) {
			next(ctx, err)
			Apply(&ctx.Response.Header)
		}
	}
}

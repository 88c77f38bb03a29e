// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// file handler.
//
// # Components
//
//   - CORS: Adds the constant Access-Control-Allow-* headers to every response
//     and answers OPTIONS preflight requests without touching the filesystem.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - RequestLog: Writes one structured log line per request with the path and
//     final status.
//
// The server registers them globally in the order RayID, RequestLog, CORS.
package middleware

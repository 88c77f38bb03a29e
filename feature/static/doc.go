// Package static serves chart assets from a single root directory.
//
// Request paths are resolved by the Resolver, which keeps every response
// inside the root:
//
//   - the path is percent-decoded; undecodable paths and NUL bytes give 400
//   - any ".." segment (with / or \ separators) gives 403
//   - symlinks are followed, but a target outside the root gives 403
//   - missing files give 404
//   - a directory serves its index.html, redirecting to the trailing-slash
//     form first; without an index it gives 404 (no listings)
//
// # HTTP Endpoints
//
//   - GET /* : Sends the file with a Content-Type inferred from its extension.
//   - HEAD /* : Same headers as GET, no body.
//   - any other method : 405 with an Allow header.
//
// OPTIONS never reaches this package; the CORS middleware answers it.
package static

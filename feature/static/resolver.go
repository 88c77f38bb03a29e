package static

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
)

// IndexFile is served for directory requests.
const IndexFile = "index.html"

var (
	// ErrForbidden marks a request path that would leave the root directory.
	ErrForbidden = fiber.NewError(fiber.StatusForbidden, "Forbidden")
	// ErrNotFound marks a request path with no file behind it.
	ErrNotFound = fiber.NewError(fiber.StatusNotFound, "Not Found")
	// ErrBadPath marks a request path that cannot be decoded.
	ErrBadPath = fiber.NewError(fiber.StatusBadRequest, "Bad Request")
)

// Resolver maps request paths to files confined under a root directory.
type Resolver struct {
	root     string
	realRoot string
	fsRoot   *os.Root
}

// NewResolver creates a resolver for root, which must be an existing directory.
func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	fsRoot, err := os.OpenRoot(resolved)
	if err != nil {
		return nil, err
	}
	return &Resolver{root: abs, realRoot: resolved, fsRoot: fsRoot}, nil
}

// Root returns the absolute root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Result is a resolved file.
type Result struct {
	// File is the symlink-free absolute path of the file to send.
	File string
	// Info describes File.
	Info fs.FileInfo
	// Dir is set when the request named a directory and File is its index.
	Dir bool
	// Clean is the decoded, cleaned request path, always with one leading
	// slash.
	Clean string
}

// Resolve returns the file to serve for a raw, still escaped request path.
//
// Any ".." segment is rejected outright, and so is a symlink whose target lies
// outside the root. Directories resolve to their index file.
func (r *Resolver) Resolve(rawPath string) (*Result, error) {
	decoded, err := url.PathUnescape(rawPath)
	if err != nil || strings.ContainsRune(decoded, 0) {
		return nil, ErrBadPath
	}

	// Backslashes are separators on Windows; treat them as such everywhere so
	// "..\" cannot sneak past the segment check.
	slashed := strings.ReplaceAll(decoded, "\\", "/")
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return nil, ErrForbidden
		}
	}

	clean := path.Clean("/" + slashed)
	full := filepath.Join(r.root, filepath.FromSlash(clean))
	if !within(r.root, full) {
		return nil, ErrForbidden
	}

	file, info, err := r.confine(full)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return &Result{File: file, Info: info, Clean: clean}, nil
	}

	file, info, err = r.confine(filepath.Join(file, IndexFile))
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}
	return &Result{File: file, Info: info, Dir: true, Clean: clean}, nil
}

// Open opens a resolved file through the root handle, so a symlink swapped in
// after Resolve still cannot reach outside the root. The caller closes the
// file.
func (r *Resolver) Open(res *Result) (*os.File, fs.FileInfo, error) {
	if !within(r.realRoot, res.File) {
		return nil, nil, ErrForbidden
	}
	rel, err := filepath.Rel(r.realRoot, res.File)
	if err != nil {
		return nil, nil, ErrForbidden
	}

	f, err := r.fsRoot.Open(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil, ErrNotFound
		}
		// Permission errors and links leaving the root alike.
		return nil, nil, ErrForbidden
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, ErrNotFound
	}
	return f, info, nil
}

// confine resolves symlinks in p and checks the result stays under the root.
func (r *Resolver) confine(p string) (string, fs.FileInfo, error) {
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return "", nil, ErrNotFound
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", nil, ErrForbidden
		}
		return "", nil, err
	}
	if !within(r.realRoot, resolved) {
		return "", nil, ErrForbidden
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, ErrNotFound
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", nil, ErrForbidden
		}
		return "", nil, err
	}
	return resolved, info, nil
}

// within reports whether p is root or lies below it.
func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Package ports finds a bindable TCP port by sequential scan.
//
// FindFreePort tries start, start+1, ... on 127.0.0.1 and returns the first
// port that binds. There is no randomization and no parallel scanning: the
// lowest free port in the range always wins. The test listener is released
// immediately, so another process can still claim the port before the caller
// binds it; callers must treat their own bind failure as a normal error.
package ports

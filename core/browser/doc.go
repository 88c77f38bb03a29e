// Package browser opens the landing page in the user's default browser.
//
// Opening a browser is a convenience, not part of serving: Launcher.Open never
// returns an error and never panics. A failure is logged together with the URL
// so the user can open it manually. The default implementation delegates to
// github.com/pkg/browser, which picks xdg-open, open or rundll32 per platform.
package browser

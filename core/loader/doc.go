// Package loader provides the plugin-like feature loading system.
//
// It allows the server to register and initialize features (modules) in a fixed
// order. Each feature implements the Feature interface, which defines its
// enablement check and route registration logic.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll(), in registration order
//
// The static file feature is the only one shipped today; the server itself
// stays unaware of what a feature serves.
package loader

package static

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	resolver *Resolver
	handler  *Handler
}

// NewFeature creates the static file feature serving root.
func NewFeature(root string, logger *zap.Logger) (*Feature, error) {
	r, err := NewResolver(root)
	if err != nil {
		return nil, err
	}
	return &Feature{resolver: r, handler: NewHandler(r, logger)}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "static"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Root returns the directory the feature serves.
func (f *Feature) Root() string {
	return f.resolver.Root()
}

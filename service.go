package wamock

import (
	"context"
	"fmt"
	"io"
)

// documentComposer is the contract between the service and the
// composition layer, abstracted for testing.
type documentComposer interface {
	Compose(t *Transcript, opts CaptureOptions) (string, error)
}

// Compile-time interface check.
var _ documentComposer = (*Compositor)(nil)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	theme     string
	assetPath string
	loader    AssetLoader
}

// Option configures a Service.
type Option func(*Service)

// WithTheme selects a built-in or custom theme by name.
func WithTheme(name string) Option {
	return func(s *Service) {
		s.cfg.theme = name
	}
}

// WithAssetPath loads templates and themes from a directory, with
// fallback to the embedded defaults.
func WithAssetPath(basePath string) Option {
	return func(s *Service) {
		s.cfg.assetPath = basePath
	}
}

// WithAssetLoader supplies a custom asset loader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(s *Service) {
		s.cfg.loader = loader
	}
}

// WithRenderer substitutes the renderer factory, replacing the default
// headless Chrome backend. The factory is invoked once per capture.
func WithRenderer(factory RendererFactory) Option {
	return func(s *Service) {
		s.factory = factory
	}
}

// Service orchestrates the capture pipeline: option resolution, document
// composition, and one render session per capture. A Service holds no
// per-capture state, so independent captures may run concurrently.
type Service struct {
	cfg      serviceConfig
	composer documentComposer
	factory  RendererFactory
	backend  io.Closer
}

// New creates a Service with default configuration: embedded assets, the
// light theme, and a shared headless Chrome backend. Use options to
// customize behavior.
func New(opts ...Option) (*Service, error) {
	s := &Service{}

	for _, opt := range opts {
		opt(s)
	}

	if s.composer == nil {
		loader := s.cfg.loader
		if loader == nil && s.cfg.assetPath != "" {
			var err error
			loader, err = NewAssetLoader(s.cfg.assetPath)
			if err != nil {
				return nil, err
			}
		}
		composer, err := NewCompositor(loader, s.cfg.theme)
		if err != nil {
			return nil, err
		}
		s.composer = composer
	}

	// Create the rod backend if no factory was injected (e.g., by tests).
	if s.factory == nil {
		backend := NewRodBackend()
		s.factory = backend.Renderer
		s.backend = backend
	}

	return s, nil
}

// Capture renders the transcript and extracts pixel bytes under the
// resolved options. Each call drives exactly one single-use render session;
// the session's resources are released before Capture returns, whatever
// the outcome.
func (s *Service) Capture(ctx context.Context, transcript *Transcript, opts Options) (*CaptureResult, error) {
	if err := validateTranscript(transcript); err != nil {
		return nil, err
	}
	resolved := ResolveOptions(opts)

	doc, err := s.composer.Compose(transcript, resolved)
	if err != nil {
		return nil, fmt.Errorf("composing document: %w", err)
	}

	session := newRenderSession(s.factory())
	return session.run(ctx, doc, resolved)
}

// Close releases backend resources (the headless browser, if one was
// launched).
func (s *Service) Close() error {
	if s.backend != nil {
		return s.backend.Close()
	}
	return nil
}

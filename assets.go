package wamock

import (
	"errors"

	"github.com/ilmimris/wa-mock-api/internal/assets"
)

// Asset name constants for built-in themes and templates.
const (
	// DefaultTheme is the name of the built-in light theme.
	DefaultTheme = "light"

	// DarkTheme is the name of the built-in dark theme.
	DarkTheme = "dark"

	// DefaultTemplate is the name of the built-in chat document template.
	DefaultTemplate = "chat"
)

// AssetLoader defines the contract for loading the chat template and theme
// stylesheets. Implementations may load from filesystem, embedded assets,
// object storage, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom
// backends.
type AssetLoader interface {
	// LoadTheme loads a theme stylesheet by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to
// embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for theme stylesheets
//   - templates/{name}.html for document templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable
// directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal Resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.Resolver
}

func (a *assetLoaderAdapter) LoadTheme(name string) (string, error) {
	content, err := a.resolver.LoadTheme(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// mustEmbeddedResolver builds the embedded-only resolver, which cannot fail.
func mustEmbeddedResolver() *assets.Resolver {
	resolver, err := assets.NewResolver("")
	if err != nil {
		panic("wamock: embedded asset resolver: " + err.Error())
	}
	return resolver
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrThemeNotFound):
		return errors.Join(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return errors.Join(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal), errors.Is(err, assets.ErrInvalidAssetName):
		return errors.Join(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

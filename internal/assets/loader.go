// Package assets provides the chat document template and theme stylesheets.
// Assets can be loaded from embedded files or a custom filesystem path.
package assets

// Loader defines the contract for loading chat themes and templates.
// Implementations may load from embedded assets, filesystem, object
// storage, etc.
type Loader interface {
	// LoadTheme loads a theme stylesheet by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// Built-in asset names.
const (
	// DefaultTemplate is the name of the built-in chat document template.
	DefaultTemplate = "chat"

	// DefaultTheme is the name of the built-in light theme.
	DefaultTheme = "light"
)

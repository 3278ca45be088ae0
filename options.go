package wamock

import (
	"strings"
	"time"
)

// Capture mode constants.
const (
	ModeViewport = "viewport"
	ModeElement  = "element"
	ModeFullPage = "fullpage"
)

// Image format constants.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// Documented defaults and bounds for capture options.
const (
	// DefaultSelector targets the chat container produced by the built-in
	// template.
	DefaultSelector = ".chat-container"

	DefaultWidth   = 1280
	DefaultHeight  = 720
	DefaultQuality = 90
	DefaultTimeout = 30 * time.Second

	// Dimension bounds in pixels. Out-of-range values are clamped
	// silently, never rejected.
	MinDimension = 300
	MaxDimension = 4096
)

// Options are the caller-supplied capture parameters. Zero values mean
// "use the documented default"; out-of-range numbers are clamped or reset,
// never rejected.
type Options struct {
	Width    int           // Viewport width; default 1280
	Height   int           // Viewport height; default 720 (ignored by Element and FullPage sizing)
	Mode     string        // "viewport", "element" or "fullpage"; empty = element
	Selector string        // CSS selector for Element mode; default ".chat-container"
	Format   string        // "png" or "jpeg"; default "png". Only FullPage honors jpeg.
	Quality  int           // JPEG quality 1-100; default 90; out-of-range resets to 90
	FullPage bool          // Forces FullPage mode, overriding Mode and Selector
	Timeout  time.Duration // Overall capture deadline; default 30s
}

// CaptureOptions is a fully resolved, validated configuration. Produce one
// with ResolveOptions; the rest of the pipeline never applies defaults.
type CaptureOptions struct {
	Width    int
	Height   int
	Mode     string
	Selector string
	Format   string
	Quality  int
	Timeout  time.Duration
}

// ResolveOptions fills defaults, clamps dimensions and quality, and picks
// the capture mode. Precedence: FullPage=true always wins, even when a
// selector is supplied; otherwise an explicit Mode is honored; otherwise a
// non-empty Selector implies Element; otherwise the default is an Element
// capture of the chat container.
func ResolveOptions(o Options) CaptureOptions {
	resolved := CaptureOptions{
		Width:    clampDimension(o.Width, DefaultWidth),
		Height:   clampDimension(o.Height, DefaultHeight),
		Format:   normalizeFormat(o.Format),
		Selector: o.Selector,
		Timeout:  o.Timeout,
	}

	resolved.Quality = o.Quality
	if resolved.Quality < 1 || resolved.Quality > 100 {
		resolved.Quality = DefaultQuality
	}
	if resolved.Timeout <= 0 {
		resolved.Timeout = DefaultTimeout
	}

	resolved.Mode = resolveMode(o)
	if resolved.Mode == ModeElement && resolved.Selector == "" {
		resolved.Selector = DefaultSelector
	}

	return resolved
}

func resolveMode(o Options) string {
	if o.FullPage {
		return ModeFullPage
	}
	switch strings.ToLower(o.Mode) {
	case ModeViewport:
		return ModeViewport
	case ModeFullPage:
		return ModeFullPage
	case ModeElement:
		return ModeElement
	}
	// Unset or unknown mode: a selector means an element capture, and the
	// default capture is the chat container element.
	return ModeElement
}

func clampDimension(v, def int) int {
	if v == 0 {
		return def
	}
	if v < MinDimension {
		return MinDimension
	}
	if v > MaxDimension {
		return MaxDimension
	}
	return v
}

// normalizeFormat lowercases the format and folds unknown values to PNG.
func normalizeFormat(format string) string {
	switch strings.ToLower(format) {
	case FormatJPEG, "jpg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}

package wamock

import "context"

// Extent is a pixel size reported by the renderer.
type Extent struct {
	Width  int
	Height int
}

// HeadlessRenderer is the seam between the capture pipeline and whatever
// backend loads markup and produces pixel bytes: browser automation, a DOM
// rasterizer, an external tool. The pipeline only ever speaks these
// primitives and never names a backend.
//
// A renderer is single-use: one Open, one document, at most one capture,
// exactly one Close. Calls are strictly sequential; implementations need no
// internal locking for pipeline use. Every blocking primitive must honor
// context cancellation.
type HeadlessRenderer interface {
	// Open acquires the backend resources for one session.
	Open(ctx context.Context) error

	// NavigateBlank loads an empty document, giving SetContent a clean
	// frame to write into.
	NavigateBlank(ctx context.Context) error

	// SetContent replaces the current document with the given markup.
	SetContent(ctx context.Context, markup string) error

	// MeasureContentExtent reports the full scrollable size of the
	// loaded document.
	MeasureContentExtent(ctx context.Context) (Extent, error)

	// SetViewport resizes the visible area.
	SetViewport(ctx context.Context, width, height int) error

	// WaitForSelectorVisible blocks until the selector matches an
	// element with a non-zero bounding box, returning that box. An
	// element that never appears is an error.
	WaitForSelectorVisible(ctx context.Context, selector string) (Extent, error)

	// CaptureViewport rasterizes the current viewport as PNG.
	CaptureViewport(ctx context.Context) ([]byte, error)

	// CaptureElement rasterizes the selector's bounding box as PNG.
	CaptureElement(ctx context.Context, selector string) ([]byte, error)

	// CaptureFullPage rasterizes the entire document. A positive quality
	// requests JPEG at that quality; quality 0 is the PNG sentinel.
	CaptureFullPage(ctx context.Context, quality int) ([]byte, error)

	// Close releases all backend resources. It must be safe to call
	// after a failed primitive and is called exactly once per session.
	Close() error
}

// RendererFactory produces one single-use renderer per capture session.
type RendererFactory func() HeadlessRenderer

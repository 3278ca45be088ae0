package wamock

import "fmt"

// CaptureResult is the outcome of one capture: the raw image bytes plus
// the format and dimensions actually achieved, which may differ from the
// request (Viewport and Element captures always produce PNG).
type CaptureResult struct {
	Bytes  []byte
	Format string // FormatPNG or FormatJPEG
	Width  int
	Height int
}

// encodeResult packages raw capture bytes with the achieved format and
// dimensions. An empty payload after a nominally successful capture is an
// error: it typically means an element selector resolved to a zero-area
// node.
func encodeResult(raw []byte, format string, width, height int) (*CaptureResult, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w (%s %dx%d)", ErrEmptyCapture, format, width, height)
	}
	return &CaptureResult{
		Bytes:  raw,
		Format: format,
		Width:  width,
		Height: height,
	}, nil
}

package wamock

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// sessionState tracks the render session lifecycle. Closed and failed are
// terminal; failed is reachable from any non-terminal state.
type sessionState int

const (
	stateCreated sessionState = iota
	stateOpened
	stateContentLoaded
	stateSized
	stateCaptured
	stateClosed
	stateFailed
)

// renderSession owns one interaction with a headless renderer: open, load,
// size, capture, close, all under a single deadline. A session is
// single-use and single-owner; it is never shared or reused across
// captures. Whatever path the session takes, the renderer is closed
// exactly once before the outcome is returned.
type renderSession struct {
	renderer  HeadlessRenderer
	state     sessionState
	closeOnce sync.Once
	closeErr  error
}

func newRenderSession(r HeadlessRenderer) *renderSession {
	return &renderSession{renderer: r, state: stateCreated}
}

// run drives the session end to end and returns the encoded result.
// All primitives share one deadline derived from opts.Timeout.
func (s *renderSession) run(ctx context.Context, doc string, opts CaptureOptions) (*CaptureResult, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	if err := s.renderer.Open(ctx); err != nil {
		return nil, s.fail(ctx, err)
	}
	s.state = stateOpened

	if err := s.renderer.NavigateBlank(ctx); err != nil {
		return nil, s.fail(ctx, err)
	}
	if err := s.renderer.SetContent(ctx, doc); err != nil {
		return nil, s.fail(ctx, err)
	}
	s.state = stateContentLoaded

	raw, format, height, err := s.capture(ctx, opts)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.state = stateCaptured

	result, err := encodeResult(raw, format, opts.Width, height)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	if err := s.close(); err != nil {
		s.state = stateFailed
		return nil, classifyError(ctx, err)
	}
	s.state = stateClosed

	return result, nil
}

// capture sizes the viewport and runs the mode's capture primitive,
// returning the raw bytes, the achieved format, and the achieved height.
func (s *renderSession) capture(ctx context.Context, opts CaptureOptions) ([]byte, string, int, error) {
	switch opts.Mode {
	case ModeFullPage:
		return s.captureFullPage(ctx, opts)
	case ModeElement:
		return s.captureElement(ctx, opts)
	default:
		return s.captureViewport(ctx, opts)
	}
}

// captureViewport rasterizes exactly the resolved viewport. Always PNG:
// the viewport primitive does not encode JPEG, a documented limitation.
func (s *renderSession) captureViewport(ctx context.Context, opts CaptureOptions) ([]byte, string, int, error) {
	if err := s.renderer.SetViewport(ctx, opts.Width, opts.Height); err != nil {
		return nil, "", 0, err
	}
	s.state = stateSized

	raw, err := s.renderer.CaptureViewport(ctx)
	if err != nil {
		return nil, "", 0, err
	}
	return raw, FormatPNG, opts.Height, nil
}

// captureElement waits for the selector to become visible, then rasterizes
// its bounding box. Always PNG, same limitation as viewport capture. An
// element that never becomes visible before the shared deadline is a
// not-found failure, never a silently empty result.
func (s *renderSession) captureElement(ctx context.Context, opts CaptureOptions) ([]byte, string, int, error) {
	if err := s.renderer.SetViewport(ctx, opts.Width, opts.Height); err != nil {
		return nil, "", 0, err
	}
	s.state = stateSized

	box, err := s.renderer.WaitForSelectorVisible(ctx, opts.Selector)
	if err != nil {
		return nil, "", 0, fmt.Errorf("%w: %q: %v", ErrSelectorNotFound, opts.Selector, err)
	}

	raw, err := s.renderer.CaptureElement(ctx, opts.Selector)
	if err != nil {
		return nil, "", 0, err
	}
	return raw, FormatPNG, box.Height, nil
}

// captureFullPage measures the full scrollable extent, grows the viewport
// to it, and captures everything. The only mode honoring format=jpeg: a
// positive quality requests JPEG, quality 0 is the PNG sentinel even when
// the requested format says jpeg.
func (s *renderSession) captureFullPage(ctx context.Context, opts CaptureOptions) ([]byte, string, int, error) {
	extent, err := s.renderer.MeasureContentExtent(ctx)
	if err != nil {
		return nil, "", 0, err
	}

	if err := s.renderer.SetViewport(ctx, opts.Width, extent.Height); err != nil {
		return nil, "", 0, err
	}
	s.state = stateSized

	quality := 0
	format := FormatPNG
	if opts.Format == FormatJPEG {
		quality = opts.Quality
		format = FormatJPEG
	}

	raw, err := s.renderer.CaptureFullPage(ctx, quality)
	if err != nil {
		return nil, "", 0, err
	}
	return raw, format, extent.Height, nil
}

// fail transitions to the terminal failed state, closes the renderer, and
// classifies the error. The close always runs before the error surfaces.
func (s *renderSession) fail(ctx context.Context, err error) error {
	s.state = stateFailed
	_ = s.close()
	return classifyError(ctx, err)
}

// close releases the renderer exactly once, on every exit path.
func (s *renderSession) close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.renderer.Close()
	})
	return s.closeErr
}

// classifyError maps a primitive failure to the capture error taxonomy.
// Deadline expiry wins over whatever error the aborted primitive surfaced;
// already-classified errors pass through; anything else is a renderer
// internal failure.
func classifyError(ctx context.Context, err error) error {
	switch {
	// A selector that never became visible stays a not-found failure even
	// when the shared deadline is what cut the wait short.
	case errors.Is(err, ErrSelectorNotFound),
		errors.Is(err, ErrRendererConnect),
		errors.Is(err, ErrEmptyCapture):
		return err
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrCaptureTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRenderer, err)
	}
}

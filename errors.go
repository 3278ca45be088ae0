package wamock

import "errors"

// Sentinel errors for capture operations. Callers classify failures with
// errors.Is; the HTTP layer maps each kind to a status code.
var (
	// Validation errors, detected before any render session opens.
	ErrNilTranscript     = errors.New("transcript cannot be nil")
	ErrInvalidTranscript = errors.New("transcript is malformed")

	// Session and capture errors. Each forces the session to close before
	// it propagates; none are retried here.
	ErrSelectorNotFound = errors.New("selector never became visible")
	ErrCaptureTimeout   = errors.New("capture deadline exceeded")
	ErrRendererConnect  = errors.New("failed to reach headless renderer")
	ErrEmptyCapture     = errors.New("capture produced no bytes")
	ErrRenderer         = errors.New("renderer operation failed")

	// Composition errors.
	ErrComposeDocument = errors.New("document composition failed")

	// Asset loading errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

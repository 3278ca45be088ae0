package wamock

import (
	"fmt"
	"strings"
)

// Message kind constants.
const (
	KindMessage  = "message"
	KindSystem   = "system"
	KindImage    = "image"
	KindVideo    = "video"
	KindAudio    = "audio"
	KindSticker  = "sticker"
	KindContact  = "contact"
	KindDocument = "document"
)

// Transcript is an ordered chat conversation plus header metadata.
// Message order is display order and is preserved as given.
type Transcript struct {
	HeaderText string    // Chat header line (contact or group name)
	StatusLine string    // Status under the header ("online", "last seen ...")
	Messages   []Message // Display order; may be empty
}

// Message is a single chat entry. An empty Author marks the message as
// outgoing (sent by the viewer); any non-empty Author renders as an
// incoming bubble labeled with that author.
type Message struct {
	ID       string // Stable identifier, surfaced as the bubble's DOM id
	Author   string // Empty = outgoing
	Body     string // Raw markup text (*bold*, _italic_, ~strike~, ```mono```)
	SentAt   string // Display timestamp; normalized to HH:MM when parseable
	Kind     string // One of the Kind constants; empty = KindMessage
	MediaURL string // For image/video/sticker kinds
	FileName string // For document kind
	FileSize string // For document kind, display string
}

// Outgoing reports whether the message renders as a sent bubble.
func (m Message) Outgoing() bool {
	return m.Author == ""
}

// kind returns the effective kind with the empty default applied.
func (m Message) kind() string {
	if m.Kind == "" {
		return KindMessage
	}
	return strings.ToLower(m.Kind)
}

// validateTranscript rejects structurally invalid input. Missing bodies or
// timestamps degrade gracefully at composition time and are not errors.
func validateTranscript(t *Transcript) error {
	if t == nil {
		return ErrNilTranscript
	}
	for i, m := range t.Messages {
		if !validKind(m.kind()) {
			return fmt.Errorf("%w: message %d has unknown kind %q", ErrInvalidTranscript, i, m.Kind)
		}
	}
	return nil
}

func validKind(kind string) bool {
	switch kind {
	case KindMessage, KindSystem, KindImage, KindVideo, KindAudio, KindSticker, KindContact, KindDocument:
		return true
	}
	return false
}

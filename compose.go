package wamock

import (
	"bytes"
	"fmt"
	"html/template"
)

// Compositor renders transcripts into self-contained markup documents.
// The template and theme stylesheet are parsed once at construction and
// shared read-only across calls; Compose is a pure function of its inputs,
// so identical arguments always produce byte-identical documents.
type Compositor struct {
	tmpl  *template.Template
	theme template.CSS
}

// NewCompositor loads the chat template and the named theme through the
// given loader. A nil loader uses the embedded assets; an empty theme name
// selects the default theme.
func NewCompositor(loader AssetLoader, theme string) (*Compositor, error) {
	if loader == nil {
		loader = &assetLoaderAdapter{resolver: mustEmbeddedResolver()}
	}
	if theme == "" {
		theme = DefaultTheme
	}

	themeCSS, err := loader.LoadTheme(theme)
	if err != nil {
		return nil, err
	}
	raw, err := loader.LoadTemplate(DefaultTemplate)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(DefaultTemplate).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", ErrComposeDocument, err)
	}

	return &Compositor{tmpl: tmpl, theme: template.CSS(themeCSS)}, nil
}

// documentData is the root template context.
type documentData struct {
	Width      int
	HeaderText string
	StatusLine string
	Theme      template.CSS
	Messages   []messageView
}

// messageView is one bubble, fully prepared for the template.
type messageView struct {
	ID         string
	Author     string
	ShowAuthor bool
	Body       template.HTML
	Time       string
	Class      string
	Icon       string
	MediaURL   template.URL
	FileName   string
	FileSize   string
}

// Compose renders the transcript into a single document at the resolved
// width. A nil transcript is ErrNilTranscript; a transcript with zero
// messages yields a valid header-only document.
func (c *Compositor) Compose(t *Transcript, opts CaptureOptions) (string, error) {
	if t == nil {
		return "", ErrNilTranscript
	}

	data := documentData{
		Width:      opts.Width,
		HeaderText: t.HeaderText,
		StatusLine: t.StatusLine,
		Theme:      c.theme,
		Messages:   make([]messageView, len(t.Messages)),
	}

	for i, m := range t.Messages {
		data.Messages[i] = messageView{
			ID:         m.ID,
			Author:     m.Author,
			ShowAuthor: m.Author != "" && m.kind() == KindMessage,
			Body:       formatBody(m.Body),
			Time:       displayTime(m.SentAt),
			Class:      bubbleClass(m),
			Icon:       bubbleIcon(m),
			MediaURL:   template.URL(m.MediaURL),
			FileName:   m.FileName,
			FileSize:   m.FileSize,
		}
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrComposeDocument, err)
	}
	return buf.String(), nil
}

// bubbleClass derives the layout classes for one message. Layout is driven
// solely by author emptiness (sent vs. received) plus the message kind.
func bubbleClass(m Message) string {
	kind := m.kind()
	if kind == KindSystem {
		return "message system-message"
	}

	class := "message received"
	if m.Outgoing() {
		class = "message sent"
	}

	switch kind {
	case KindImage:
		class += " image-message"
	case KindVideo:
		class += " video-message"
	case KindAudio:
		class += " audio-message"
	case KindSticker:
		class += " sticker-message"
	case KindContact:
		class += " contact-message"
	case KindDocument:
		class += " document-message"
	}
	return class
}

// bubbleIcon returns the icon class for kinds that render one.
func bubbleIcon(m Message) string {
	switch m.kind() {
	case KindAudio:
		return "icon-audio"
	case KindVideo:
		return "icon-video"
	case KindDocument:
		return "icon-document"
	case KindContact:
		return "icon-contact"
	}
	return ""
}

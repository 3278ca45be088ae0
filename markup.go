package wamock

import (
	"html/template"
	"strings"
)

// Chat markup delimiters: *bold*, _italic_, ~strike~, and a fenced
// ```monospace``` form. Parsing is an explicit scanner rather than regex so
// the boundary rules below hold on every engine:
//
//   - a delimiter only opens when its outer-left neighbor is not a word
//     character and its inner neighbor is non-whitespace;
//   - it only closes when its inner neighbor is non-whitespace and its
//     outer-right neighbor is not a word character;
//   - a span never crosses a line break.
//
// Word-internal delimiters (file_name) are therefore literal text.

const fence = "```"

var spanTags = map[byte]string{
	'*': "strong",
	'_': "em",
	'~': "del",
}

// formatBody converts a raw message body into safe display markup:
// structural characters are escaped first, then delimiter spans are
// rendered, then literal newlines become line breaks.
func formatBody(raw string) template.HTML {
	formatted := renderSpans(escapeMarkup(raw))
	return template.HTML(strings.ReplaceAll(formatted, "\n", "<br>"))
}

// escapeMarkup neutralizes markup-structural characters before any span
// processing, so message bodies can never inject elements.
func escapeMarkup(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}

// renderSpans scans s once, emitting <strong>/<em>/<del>/<code> spans where
// delimiters satisfy the boundary rules. Span contents are rendered
// recursively, so *_nested_* works; fenced monospace is emitted verbatim.
func renderSpans(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], fence) {
			if inner, next, ok := matchFence(s, i); ok {
				b.WriteString("<code>")
				b.WriteString(inner)
				b.WriteString("</code>")
				i = next
				continue
			}
		}

		if tag, ok := spanTags[s[i]]; ok {
			if inner, next, matched := matchSpan(s, i); matched {
				b.WriteString("<")
				b.WriteString(tag)
				b.WriteString(">")
				b.WriteString(renderSpans(inner))
				b.WriteString("</")
				b.WriteString(tag)
				b.WriteString(">")
				i = next
				continue
			}
		}

		b.WriteByte(s[i])
		i++
	}

	return b.String()
}

// matchFence matches ```inner``` at position i. The inner text must be
// non-empty and free of backticks; it may span line breaks.
func matchFence(s string, i int) (inner string, next int, ok bool) {
	rest := s[i+len(fence):]
	end := strings.Index(rest, fence)
	if end <= 0 {
		return "", 0, false
	}
	inner = rest[:end]
	if strings.Contains(inner, "`") {
		return "", 0, false
	}
	return inner, i + len(fence) + end + len(fence), true
}

// matchSpan matches a delimiter pair starting at i. Only the first
// occurrence of the same delimiter is considered as the closer; if it
// fails the boundary rules the opener is literal text.
func matchSpan(s string, i int) (inner string, next int, ok bool) {
	c := s[i]

	// Opener: outer-left neighbor must not be a word character, and the
	// inner neighbor must be printable content.
	if i > 0 && isWordChar(s[i-1]) {
		return "", 0, false
	}
	if i+1 >= len(s) || isSpaceChar(s[i+1]) || s[i+1] == c {
		return "", 0, false
	}

	j := strings.IndexByte(s[i+1:], c)
	if j < 0 {
		return "", 0, false
	}
	j += i + 1

	inner = s[i+1 : j]
	if strings.ContainsRune(inner, '\n') {
		return "", 0, false
	}

	// Closer: inner neighbor non-whitespace, outer-right neighbor not a
	// word character.
	if isSpaceChar(s[j-1]) {
		return "", 0, false
	}
	if j+1 < len(s) && isWordChar(s[j+1]) {
		return "", 0, false
	}

	return inner, j + 1, true
}

// ASCII classes, matching \w and \s as the formatting rules define them.
// Multi-byte runes count as neither, which is what the boundary rules want:
// delimiters are all ASCII and non-ASCII neighbors never suppress a span.

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isSpaceChar(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	wamock "github.com/ilmimris/wa-mock-api"
)

// fakeRenderer satisfies the renderer seam without a browser.
type fakeRenderer struct {
	failOpen     bool
	failSelector bool
	payload      []byte
}

func (f *fakeRenderer) Open(ctx context.Context) error {
	if f.failOpen {
		return wamock.ErrRendererConnect
	}
	return nil
}

func (f *fakeRenderer) NavigateBlank(ctx context.Context) error { return nil }

func (f *fakeRenderer) SetContent(ctx context.Context, _ string) error { return nil }

func (f *fakeRenderer) SetViewport(ctx context.Context, _, _ int) error { return nil }

func (f *fakeRenderer) Close() error { return nil }

func (f *fakeRenderer) MeasureContentExtent(ctx context.Context) (wamock.Extent, error) {
	return wamock.Extent{Width: 1280, Height: 2400}, nil
}

func (f *fakeRenderer) WaitForSelectorVisible(ctx context.Context, selector string) (wamock.Extent, error) {
	if f.failSelector {
		return wamock.Extent{}, wamock.ErrSelectorNotFound
	}
	return wamock.Extent{Width: 1240, Height: 960}, nil
}

func (f *fakeRenderer) CaptureViewport(ctx context.Context) ([]byte, error) {
	return f.payload, nil
}

func (f *fakeRenderer) CaptureElement(ctx context.Context, selector string) ([]byte, error) {
	return f.payload, nil
}

func (f *fakeRenderer) CaptureFullPage(ctx context.Context, quality int) ([]byte, error) {
	return f.payload, nil
}

func newTestRouter(t *testing.T, newRenderer func() wamock.HeadlessRenderer) http.Handler {
	t.Helper()
	pool := wamock.NewServicePool(1, wamock.WithRenderer(newRenderer))
	t.Cleanup(func() { _ = pool.Close() })
	return newRouter(zerolog.Nop(), pool)
}

func postScreenshot(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/screenshot", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t, func() wamock.HeadlessRenderer {
		return &fakeRenderer{payload: []byte("png")}
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestScreenshotSuccess(t *testing.T) {
	payload := []byte("\x89PNG fake image bytes")
	h := newTestRouter(t, func() wamock.HeadlessRenderer {
		return &fakeRenderer{payload: payload}
	})

	body := `{
		"chatName": "Support",
		"lastSeen": "online",
		"outputFileName": "ticket-42",
		"messages": [
			{"timestamp": "2024-03-01T10:00:00Z", "sender": "Alice", "content": "hi *there*"},
			{"timestamp": "2024-03-01T10:01:00Z", "sender": "bot", "content": "hello"}
		]
	}`
	rec := postScreenshot(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="ticket-42.png"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), payload) {
		t.Error("response body does not match captured bytes")
	}
}

func TestScreenshotJPEGFormat(t *testing.T) {
	h := newTestRouter(t, func() wamock.HeadlessRenderer {
		return &fakeRenderer{payload: []byte("jpeg bytes")}
	})

	body := `{
		"messages": [{"timestamp": "10:00", "sender": "Alice", "content": "hi"}],
		"screenshotOptions": {"isFullPage": true, "format": "jpg", "quality": 80}
	}`
	rec := postScreenshot(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", got)
	}
}

func TestScreenshotInvalidJSON(t *testing.T) {
	h := newTestRouter(t, func() wamock.HeadlessRenderer {
		return &fakeRenderer{payload: []byte("png")}
	})

	rec := postScreenshot(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestScreenshotInvalidKind(t *testing.T) {
	h := newTestRouter(t, func() wamock.HeadlessRenderer {
		return &fakeRenderer{payload: []byte("png")}
	})

	body := `{"messages": [{"timestamp": "10:00", "sender": "Alice", "content": "hi", "kind": "hologram"}]}`
	rec := postScreenshot(t, h, body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestScreenshotSelectorNotFound(t *testing.T) {
	h := newTestRouter(t, func() wamock.HeadlessRenderer {
		return &fakeRenderer{failSelector: true, payload: []byte("png")}
	})

	body := `{"messages": [{"timestamp": "10:00", "sender": "Alice", "content": "hi"}]}`
	rec := postScreenshot(t, h, body)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error body missing message")
	}
}

func TestScreenshotRendererUnavailable(t *testing.T) {
	h := newTestRouter(t, func() wamock.HeadlessRenderer {
		return &fakeRenderer{failOpen: true}
	})

	body := `{"messages": [{"timestamp": "10:00", "sender": "Alice", "content": "hi"}]}`
	rec := postScreenshot(t, h, body)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil transcript", wamock.ErrNilTranscript, http.StatusBadRequest},
		{"invalid transcript", wamock.ErrInvalidTranscript, http.StatusBadRequest},
		{"selector not found", wamock.ErrSelectorNotFound, http.StatusNotFound},
		{"timeout", wamock.ErrCaptureTimeout, http.StatusGatewayTimeout},
		{"connect", wamock.ErrRendererConnect, http.StatusBadGateway},
		{"renderer", wamock.ErrRenderer, http.StatusInternalServerError},
		{"empty capture", wamock.ErrEmptyCapture, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestToTranscriptSenderMapping(t *testing.T) {
	req := &screenshotRequest{
		ChatName: "Team",
		Messages: []requestMessage{
			{Sender: "Alice", Content: "hi"},
			{Sender: "bot", Content: "reply"},
			{Sender: "USER", Content: "mine"},
		},
	}
	tr := toTranscript(req)

	if tr.HeaderText != "Team" {
		t.Errorf("HeaderText = %q", tr.HeaderText)
	}
	if tr.Messages[0].Author != "Alice" {
		t.Errorf("Messages[0].Author = %q, want Alice", tr.Messages[0].Author)
	}
	if tr.Messages[1].Author != "" {
		t.Errorf("Messages[1].Author = %q, want empty (bot is the viewer)", tr.Messages[1].Author)
	}
	if tr.Messages[2].Author != "" {
		t.Errorf("Messages[2].Author = %q, want empty (case-insensitive)", tr.Messages[2].Author)
	}
	if tr.Messages[0].ID != "msg0" || tr.Messages[2].ID != "msg2" {
		t.Errorf("IDs = %q, %q, want msg0, msg2", tr.Messages[0].ID, tr.Messages[2].ID)
	}
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format string
		want   string
	}{
		{"empty", "", "png", `inline; filename="chat-screenshot.png"`},
		{"plain", "report", "png", `attachment; filename="report.png"`},
		{"has extension", "report.png", "png", `attachment; filename="report.png"`},
		{"path traversal", `../etc/passwd`, "png", `attachment; filename=".._etc_passwd.png"`},
		{"quotes", `a"b`, "jpeg", `attachment; filename="a_b.jpeg"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentDisposition(tt.file, tt.format); got != tt.want {
				t.Errorf("contentDisposition(%q, %q) = %q, want %q", tt.file, tt.format, got, tt.want)
			}
		})
	}
}

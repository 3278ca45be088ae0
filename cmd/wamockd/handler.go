package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	wamock "github.com/ilmimris/wa-mock-api"
)

// screenshotRequest is the JSON body of POST /v1/screenshot.
type screenshotRequest struct {
	ChatName          string             `json:"chatName"`
	LastSeen          string             `json:"lastSeen"`
	OutputFileName    string             `json:"outputFileName"`
	Messages          []requestMessage   `json:"messages"`
	ScreenshotOptions *screenshotOptions `json:"screenshotOptions"`
}

// requestMessage is one chat entry on the wire. Senders naming the viewer
// ("bot" or "user", case-insensitive) collapse to an empty author so the
// bubble renders as outgoing.
type requestMessage struct {
	Timestamp string `json:"timestamp"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Kind      string `json:"kind,omitempty"`
	MediaURL  string `json:"mediaUrl,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	FileSize  string `json:"fileSize,omitempty"`
}

// screenshotOptions overrides the capture defaults per request.
type screenshotOptions struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Mode       string `json:"mode"`
	Selector   string `json:"selector"`
	Format     string `json:"format"`
	Quality    int    `json:"quality"`
	IsFullPage bool   `json:"isFullPage"`
	TimeoutMs  int    `json:"timeoutMs"`
}

// selfSenders are sender values mapped to the outgoing side of the chat.
var selfSenders = map[string]bool{
	"bot":  true,
	"user": true,
}

func toTranscript(req *screenshotRequest) *wamock.Transcript {
	t := &wamock.Transcript{
		HeaderText: req.ChatName,
		StatusLine: req.LastSeen,
		Messages:   make([]wamock.Message, len(req.Messages)),
	}
	for i, rm := range req.Messages {
		author := rm.Sender
		if selfSenders[strings.ToLower(rm.Sender)] {
			author = ""
		}
		t.Messages[i] = wamock.Message{
			ID:       fmt.Sprintf("msg%d", i),
			Author:   author,
			Body:     rm.Content,
			SentAt:   rm.Timestamp,
			Kind:     rm.Kind,
			MediaURL: rm.MediaURL,
			FileName: rm.FileName,
			FileSize: rm.FileSize,
		}
	}
	return t
}

func toOptions(o *screenshotOptions) wamock.Options {
	if o == nil {
		return wamock.Options{}
	}
	return wamock.Options{
		Width:    o.Width,
		Height:   o.Height,
		Mode:     o.Mode,
		Selector: o.Selector,
		Format:   o.Format,
		Quality:  o.Quality,
		FullPage: o.IsFullPage,
		Timeout:  time.Duration(o.TimeoutMs) * time.Millisecond,
	}
}

// handleScreenshot renders a transcript and streams the image back.
func handleScreenshot(logger zerolog.Logger, pool *wamock.ServicePool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req screenshotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON payload: %v", err))
			return
		}

		svc, err := pool.Acquire()
		if err != nil {
			logger.Error().Err(err).Msg("acquiring capture service")
			writeError(w, http.StatusBadGateway, "renderer unavailable")
			return
		}
		defer pool.Release(svc)

		result, err := svc.Capture(r.Context(), toTranscript(&req), toOptions(req.ScreenshotOptions))
		if err != nil {
			status := statusForError(err)
			logger.Error().Err(err).Int("status", status).Msg("capture failed")
			writeError(w, status, err.Error())
			return
		}

		w.Header().Set("Content-Type", "image/"+result.Format)
		w.Header().Set("Content-Disposition", contentDisposition(req.OutputFileName, result.Format))
		if _, err := w.Write(result.Bytes); err != nil {
			// Headers are already out; nothing to send the client.
			logger.Error().Err(err).Msg("writing image response")
		}
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// statusForError maps the capture error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, wamock.ErrNilTranscript), errors.Is(err, wamock.ErrInvalidTranscript):
		return http.StatusBadRequest
	case errors.Is(err, wamock.ErrSelectorNotFound):
		return http.StatusNotFound
	case errors.Is(err, wamock.ErrCaptureTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, wamock.ErrRendererConnect):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// contentDisposition builds a safe attachment header. A caller-supplied
// filename is sanitized and given the image extension when missing.
func contentDisposition(name, format string) string {
	if name == "" {
		return fmt.Sprintf("inline; filename=%q", "chat-screenshot."+format)
	}
	safe := strings.NewReplacer(`"`, "_", "/", "_", `\`, "_").Replace(name)
	if !strings.HasSuffix(strings.ToLower(safe), "."+format) {
		safe += "." + format
	}
	return fmt.Sprintf("attachment; filename=%q", safe)
}

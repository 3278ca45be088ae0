package wamock

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodBackend drives headless Chrome through go-rod. One browser process is
// shared across sessions and launched lazily on first use; each capture
// session gets its own page-scoped renderer, so sessions stay independent.
// The backend is the only place that knows a browser exists; checkout of
// the shared process is guarded here, not in the pipeline.
type RodBackend struct {
	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodBackend creates a backend. Chrome is not launched until the first
// session opens.
func NewRodBackend() *RodBackend {
	return &RodBackend{}
}

// Renderer hands out a single-use renderer backed by a fresh browser page.
func (b *RodBackend) Renderer() HeadlessRenderer {
	return &rodRenderer{backend: b}
}

// ensureBrowser lazily launches and connects to the browser.
func (b *RodBackend) ensureBrowser() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererConnect, err)
	}

	b.browser = browser
	return browser, nil
}

// Close shuts the shared browser down. Renderers handed out earlier become
// unusable.
func (b *RodBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		err := b.browser.Close()
		b.browser = nil
		return err
	}
	return nil
}

// rodRenderer is one browser page, implementing the renderer primitives
// for a single capture session.
type rodRenderer struct {
	backend *RodBackend
	page    *rod.Page
}

// Compile-time interface check.
var _ HeadlessRenderer = (*rodRenderer)(nil)

func (r *rodRenderer) Open(ctx context.Context) error {
	browser, err := r.backend.ensureBrowser()
	if err != nil {
		return err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRendererConnect, err)
	}
	r.page = page
	return nil
}

func (r *rodRenderer) NavigateBlank(ctx context.Context) error {
	return r.page.Context(ctx).Navigate("about:blank")
}

func (r *rodRenderer) SetContent(ctx context.Context, markup string) error {
	return r.page.Context(ctx).SetDocumentContent(markup)
}

func (r *rodRenderer) MeasureContentExtent(ctx context.Context) (Extent, error) {
	res, err := r.page.Context(ctx).Eval(`() => ({
		w: document.documentElement.scrollWidth,
		h: document.documentElement.scrollHeight,
	})`)
	if err != nil {
		return Extent{}, err
	}
	return Extent{
		Width:  res.Value.Get("w").Int(),
		Height: res.Value.Get("h").Int(),
	}, nil
}

func (r *rodRenderer) SetViewport(ctx context.Context, width, height int) error {
	return r.page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	})
}

func (r *rodRenderer) WaitForSelectorVisible(ctx context.Context, selector string) (Extent, error) {
	el, err := r.page.Context(ctx).Element(selector)
	if err != nil {
		return Extent{}, err
	}
	if err := el.WaitVisible(); err != nil {
		return Extent{}, err
	}
	shape, err := el.Shape()
	if err != nil {
		return Extent{}, err
	}
	box := shape.Box()
	return Extent{Width: int(box.Width), Height: int(box.Height)}, nil
}

func (r *rodRenderer) CaptureViewport(ctx context.Context) ([]byte, error) {
	return r.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

func (r *rodRenderer) CaptureElement(ctx context.Context, selector string) ([]byte, error) {
	el, err := r.page.Context(ctx).Element(selector)
	if err != nil {
		return nil, err
	}
	return el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
}

func (r *rodRenderer) CaptureFullPage(ctx context.Context, quality int) ([]byte, error) {
	req := &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	}
	if quality > 0 {
		req.Format = proto.PageCaptureScreenshotFormatJpeg
		req.Quality = &quality
	}
	return r.page.Context(ctx).Screenshot(true, req)
}

func (r *rodRenderer) Close() error {
	if r.page != nil {
		err := r.page.Close()
		r.page = nil
		return err
	}
	return nil
}

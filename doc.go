// Package wamock renders chat transcripts into raster screenshots that
// mimic a messaging application, using a headless renderer.
//
// # Quick Start
//
// Create a service, capture a transcript, and close when done:
//
//	svc, err := wamock.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Capture(ctx, &wamock.Transcript{
//	    HeaderText: "Acme Support",
//	    StatusLine: "online",
//	    Messages: []wamock.Message{
//	        {Body: "Hi *there*", SentAt: "09:41"},
//	        {Author: "Bob", Body: "hello", SentAt: "09:42"},
//	    },
//	}, wamock.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("chat.png", result.Bytes, 0644)
//
// The result carries the raw image bytes plus the format and dimensions
// actually achieved, which may differ from the request (Viewport and
// Element captures always produce PNG).
//
// # Capture Pipeline
//
// Each capture follows these stages:
//
//  1. Option resolution (defaults, clamping, mode precedence)
//  2. Document composition (escaping, chat markup spans, bubble layout)
//  3. A single-use render session against the headless renderer
//  4. Result encoding with the achieved format and dimensions
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := wamock.New(
//	    wamock.WithTheme("dark"),
//	    wamock.WithAssetPath("/path/to/custom/assets"),
//	)
//
// Per-capture options are passed via Options:
//
//	result, err := svc.Capture(ctx, transcript, wamock.Options{
//	    Width:    800,
//	    FullPage: true,
//	    Format:   "jpeg",
//	    Quality:  80,
//	})
//
// # Parallel Processing
//
// Independent captures may run concurrently; use ServicePool to bound the
// number of live browser pages:
//
//	pool := wamock.NewServicePool(4)
//	defer pool.Close()
//
//	svc, err := pool.Acquire()
//	defer pool.Release(svc)
//	result, err := svc.Capture(ctx, transcript, opts)
//
// # Custom Backends
//
// The production backend drives headless Chrome through go-rod. Any backend
// implementing HeadlessRenderer can be substituted:
//
//	svc, err := wamock.New(wamock.WithRenderer(myFactory))
//
// # Browser Requirements
//
// Screenshot capture requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). Use ROD_BROWSER_BIN to point at a pre-installed
// binary in containers.
package wamock

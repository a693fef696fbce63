// Package rod provides browser automation implementations of the leadgen
// Browser, Page and Element interfaces using go-rod and headless Chrome.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Mirnes420/leadgen"
)

// Ensure Browser implements leadgen.Browser at compile time.
var _ leadgen.Browser = (*Browser)(nil)

// Browser launches and drives one headless Chrome instance. One Browser
// serves both the long-lived search session page and the short-lived
// per-website visit pages.
//
// Browser is safe for concurrent use by multiple goroutines.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool
}

// NewBrowser launches a headless Chrome browser.
// Close must be called when the Browser is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser() (*Browser, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Browser{browser: browser, launcher: lnchr}, nil
}

// NewPage opens a fresh page configured by the given options. The caller
// must close the returned page on every exit path.
func (b *Browser) NewPage(ctx context.Context, opts ...leadgen.PageOption) (leadgen.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var options leadgen.PageOptions
	for _, opt := range opts {
		opt(&options)
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}

	p := &Page{page: page}

	if options.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: options.UserAgent}); err != nil {
			p.Close()
			return nil, fmt.Errorf("setting user agent: %w", err)
		}
	}

	if options.ViewportWidth > 0 && options.ViewportHeight > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             options.ViewportWidth,
			Height:            options.ViewportHeight,
			DeviceScaleFactor: 1,
		}); err != nil {
			p.Close()
			return nil, fmt.Errorf("setting viewport: %w", err)
		}
	}

	if options.BlockAssets {
		if err := p.blockAssets(); err != nil {
			p.Close()
			return nil, fmt.Errorf("enabling asset blocking: %w", err)
		}
	}

	return p, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

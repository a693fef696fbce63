package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mirnes420/leadgen"
)

// Ensure Consent implements leadgen.ConsentDismisser at compile time.
var _ leadgen.ConsentDismisser = (*Consent)(nil)

// Pattern locates a consent button either by CSS selector alone or by
// selector plus visible text.
type Pattern struct {
	Selector string
	Text     string
}

// defaultConsentPatterns covers common consent-management platforms
// (OneTrust, Cookiebot and friends) in the languages the pipeline targets,
// tried in order.
var defaultConsentPatterns = []Pattern{
	{Selector: "button", Text: "Accept all"},
	{Selector: "button", Text: "Alle akzeptieren"},
	{Selector: "button", Text: "I agree"},
	{Selector: "button", Text: "Accept"},
	{Selector: "button", Text: "Akzeptieren"},
	{Selector: "button", Text: "Allow"},
	{Selector: "button", Text: "OK"},
	{Selector: "button", Text: "Slažem se"},
	{Selector: "button", Text: "Prihvati"},
	{Selector: `[id*="cookie-accept"]`},
	{Selector: `[class*="accept-button"]`},
	{Selector: `[id*="consent-allow"]`},
}

// Consent detects and dismisses cookie/consent overlays by probing a fixed
// ordered pattern list. Probing is bounded by short timeouts so a page
// without a banner costs almost nothing.
type Consent struct {
	Patterns     []Pattern
	ProbeTimeout time.Duration
	ClickTimeout time.Duration
	Logger       *slog.Logger
}

// NewConsent creates a Consent with the default pattern list and timing.
func NewConsent(logger *slog.Logger) *Consent {
	return &Consent{
		Patterns:     defaultConsentPatterns,
		ProbeTimeout: time.Second,
		ClickTimeout: 2 * time.Second,
		Logger:       logger,
	}
}

// Dismiss tries each pattern until one matches a visible element and
// clicks it. It returns true if a banner was dismissed; a page without a
// banner returns false silently.
func (c *Consent) Dismiss(ctx context.Context, page leadgen.Page) bool {
	for _, pattern := range c.Patterns {
		if ctx.Err() != nil {
			return false
		}
		if c.tryPattern(ctx, page, pattern) {
			if c.Logger != nil {
				c.Logger.Debug("consent banner dismissed", "selector", pattern.Selector, "text", pattern.Text)
			}
			return true
		}
	}
	return false
}

// tryPattern probes for one pattern and clicks it when visible.
func (c *Consent) tryPattern(ctx context.Context, page leadgen.Page, pattern Pattern) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.ProbeTimeout)
	defer cancel()

	var (
		el  leadgen.Element
		err error
	)
	if pattern.Text != "" {
		el, err = page.ElementByText(probeCtx, pattern.Selector, pattern.Text)
	} else {
		el, err = page.Element(probeCtx, pattern.Selector)
	}
	if err != nil {
		return false
	}

	if visible, err := el.Visible(probeCtx); err != nil || !visible {
		return false
	}

	clickCtx, cancel := context.WithTimeout(ctx, c.ClickTimeout)
	defer cancel()
	return el.Click(clickCtx) == nil
}

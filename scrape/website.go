package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/Mirnes420/leadgen"
)

// Ensure Finder implements leadgen.EmailFinder at compile time.
var _ leadgen.EmailFinder = (*Finder)(nil)

// userAgent is sent on website visits. Some sites serve automation-hostile
// markup to the default headless UA.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// defaultNavTimeout bounds a website navigation. A site that has not
// produced its markup by then is treated as a miss, not retried.
const defaultNavTimeout = 15 * time.Second

// contactLinkLabels are followed, in priority order, when the homepage
// yields no email. Localized variants for the German-speaking market.
var contactLinkLabels = []string{"Impressum", "Kontakt", "Contact", "Legal"}

// Finder mines a contact email from a business website. Each visit gets
// its own page with heavy assets blocked; the page is released on every
// exit path so resources cannot leak across hundreds of candidates.
type Finder struct {
	Browser   leadgen.Browser
	Extractor leadgen.EmailExtractor
	Consent   leadgen.ConsentDismisser

	// Limiter, when set, paces visits per website domain.
	Limiter *DomainLimiter

	// NavTimeout overrides the navigation bound; zero means the default.
	NavTimeout time.Duration

	Logger *slog.Logger
}

// Find loads the website and returns the first usable email address,
// following contact/legal/imprint links when the homepage yields nothing.
// An empty or unresolved website is answered immediately without
// navigating. Navigation and extraction failures return Unresolved with a
// non-nil error; a site that simply exposes no address returns Unresolved
// with a nil error.
func (f *Finder) Find(ctx context.Context, website string) (string, error) {
	if website == "" || website == leadgen.Unresolved {
		return leadgen.Unresolved, nil
	}

	if f.Limiter != nil {
		if u, err := url.Parse(website); err == nil && u.Hostname() != "" {
			if err := f.Limiter.Wait(ctx, u.Hostname()); err != nil {
				return leadgen.Unresolved, err
			}
		}
	}

	page, err := f.Browser.NewPage(ctx,
		leadgen.WithBlockedAssets(),
		leadgen.WithUserAgent(userAgent),
	)
	if err != nil {
		return leadgen.Unresolved, fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, f.navTimeout())
	err = page.Navigate(navCtx, website)
	cancel()
	if err != nil {
		return leadgen.Unresolved, fmt.Errorf("navigating to %s: %w", website, err)
	}

	if f.Consent != nil {
		f.Consent.Dismiss(ctx, page)
	}

	// Homepage first.
	if email, ok := f.extract(ctx, page); ok {
		return email, nil
	}

	// Deep search: follow the first visible contact-like link and retry,
	// stopping at the first success.
	for _, label := range contactLinkLabels {
		if ctx.Err() != nil {
			return leadgen.Unresolved, ctx.Err()
		}
		if !f.followLink(ctx, page, label) {
			continue
		}
		if email, ok := f.extract(ctx, page); ok {
			return email, nil
		}
	}

	return leadgen.Unresolved, nil
}

// followLink clicks the first visible anchor with the given label and
// waits for the next document to be ready.
func (f *Finder) followLink(ctx context.Context, page leadgen.Page, label string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	link, err := page.ElementByText(probeCtx, "a", label)
	if err != nil {
		return false
	}
	if visible, err := link.Visible(probeCtx); err != nil || !visible {
		return false
	}

	clickCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := link.Click(clickCtx); err != nil {
		return false
	}

	// Let the next page reach a scrapeable state before extraction.
	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := page.WaitVisible(waitCtx, "body"); err != nil {
		return false
	}
	return true
}

// extract scans the current page markup for an email address.
func (f *Finder) extract(ctx context.Context, page leadgen.Page) (string, bool) {
	html, err := page.Content(ctx)
	if err != nil {
		if f.Logger != nil {
			f.Logger.Debug("reading page content failed", "err", err)
		}
		return "", false
	}

	emails := f.Extractor.Extract(html)
	if len(emails) == 0 {
		return "", false
	}
	return emails[0], true
}

func (f *Finder) navTimeout() time.Duration {
	if f.NavTimeout > 0 {
		return f.NavTimeout
	}
	return defaultNavTimeout
}

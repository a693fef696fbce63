package leadgen

import "context"

// Browser provides pages for navigation. Implementations hide the browser
// engine; tests use the mock package instead of a real browser.
type Browser interface {
	// NewPage opens a fresh page. The returned page must be closed by the
	// caller on every exit path.
	NewPage(ctx context.Context, opts ...PageOption) (Page, error)

	// Close releases browser resources.
	// Must be called when the Browser is no longer needed.
	Close() error
}

// Page is a minimal browser page abstraction: navigate, locate, click,
// content, wait. It is deliberately small so the scraping pipeline can be
// tested against a fake implementation without a browser engine.
//
// All operations honor context cancellation and deadlines; callers bound
// every call with an explicit timeout.
type Page interface {
	// Navigate loads the URL and waits for DOM content to be ready.
	// It does not wait for subresources to finish loading.
	Navigate(ctx context.Context, url string) error

	// Content returns the full current markup of the page, including
	// attribute values and hidden elements.
	Content(ctx context.Context) (string, error)

	// Element returns the first element matching the CSS selector.
	// Returns ENOTFOUND if no element matches.
	Element(ctx context.Context, selector string) (Element, error)

	// Elements returns all elements currently matching the CSS selector.
	Elements(ctx context.Context, selector string) ([]Element, error)

	// ElementByText returns the first element matching the CSS selector
	// whose text content matches the given pattern.
	// Returns ENOTFOUND if no element matches.
	ElementByText(ctx context.Context, selector, pattern string) (Element, error)

	// Type fills the first element matching the CSS selector with text.
	Type(ctx context.Context, selector, text string) error

	// Press sends a keyboard key (e.g. "Enter") to the page.
	Press(ctx context.Context, key string) error

	// WaitVisible blocks until an element matching the CSS selector is
	// visible, or the context expires.
	WaitVisible(ctx context.Context, selector string) error

	// Close releases the page. Safe to call on every exit path.
	Close() error
}

// Element is a handle to a located page element.
type Element interface {
	// Text returns the element's rendered text content.
	Text(ctx context.Context) (string, error)

	// Attribute returns the value of the named attribute, or "" if the
	// attribute is absent.
	Attribute(ctx context.Context, name string) (string, error)

	// Visible reports whether the element is currently visible.
	Visible(ctx context.Context) (bool, error)

	// Click clicks the element.
	Click(ctx context.Context) error

	// Element returns the first descendant matching the CSS selector.
	// Returns ENOTFOUND if no element matches.
	Element(ctx context.Context, selector string) (Element, error)

	// Scroll scrolls the element's content down by the given pixel amount.
	Scroll(ctx context.Context, pixels int) error
}

// PageOptions configures a new page.
type PageOptions struct {
	// BlockAssets aborts requests for heavy subresources (images,
	// stylesheets, fonts, media). Performance optimization only.
	BlockAssets bool

	// UserAgent overrides the browser user agent when non-empty.
	UserAgent string

	// ViewportWidth and ViewportHeight set the page viewport when both
	// are positive.
	ViewportWidth  int
	ViewportHeight int
}

// PageOption configures a new page.
type PageOption func(*PageOptions)

// WithBlockedAssets aborts image/stylesheet/font/media requests.
func WithBlockedAssets() PageOption {
	return func(o *PageOptions) { o.BlockAssets = true }
}

// WithUserAgent overrides the page user agent.
func WithUserAgent(ua string) PageOption {
	return func(o *PageOptions) { o.UserAgent = ua }
}

// WithViewport sets the page viewport size.
func WithViewport(width, height int) PageOption {
	return func(o *PageOptions) {
		o.ViewportWidth = width
		o.ViewportHeight = height
	}
}

// ConsentDismisser detects and dismisses cookie/consent overlays.
type ConsentDismisser interface {
	// Dismiss tries to find and click a consent button on the page.
	// It returns true if a banner was found and dismissed. Absence of a
	// banner is not an error.
	Dismiss(ctx context.Context, page Page) bool
}

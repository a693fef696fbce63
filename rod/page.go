package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Mirnes420/leadgen"
)

// Compile-time interface verification.
var (
	_ leadgen.Page    = (*Page)(nil)
	_ leadgen.Element = (*Element)(nil)
)

// Page wraps a rod page. All lookups honor the caller's context deadline;
// a lookup that outlives its deadline reports ENOTFOUND.
type Page struct {
	page   *rod.Page
	router *rod.HijackRouter
}

// blockAssets intercepts requests for heavy subresources and aborts them.
// Purely a performance optimization for per-website visit pages.
func (p *Page) blockAssets() error {
	router := p.page.HijackRequests()
	err := router.Add("*", "", func(h *rod.Hijack) {
		switch h.Request.Type() {
		case proto.NetworkResourceTypeImage,
			proto.NetworkResourceTypeStylesheet,
			proto.NetworkResourceTypeFont,
			proto.NetworkResourceTypeMedia:
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		default:
			h.ContinueRequest(&proto.FetchContinueRequest{})
		}
	})
	if err != nil {
		return err
	}
	go router.Run()
	p.router = router
	return nil
}

// Navigate loads the URL and waits for DOM content to be ready. It does not
// wait for subresources, so slow sites become usable as soon as markup is
// parsed.
func (p *Page) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)

	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	wait()

	return ctx.Err()
}

// Content returns the full current markup of the page.
func (p *Page) Content(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// Element returns the first element matching the CSS selector, waiting up
// to the context deadline for it to appear.
func (p *Page) Element(ctx context.Context, selector string) (leadgen.Element, error) {
	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return nil, notFound(selector, err)
	}
	return &Element{el: el}, nil
}

// Elements returns all elements currently matching the CSS selector
// without waiting.
func (p *Page) Elements(ctx context.Context, selector string) ([]leadgen.Element, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}

	out := make([]leadgen.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &Element{el: el})
	}
	return out, nil
}

// ElementByText returns the first element matching the CSS selector whose
// text matches the pattern, waiting up to the context deadline.
func (p *Page) ElementByText(ctx context.Context, selector, pattern string) (leadgen.Element, error) {
	el, err := p.page.Context(ctx).ElementR(selector, pattern)
	if err != nil {
		return nil, notFound(selector+" ~ "+pattern, err)
	}
	return &Element{el: el}, nil
}

// Type fills the first element matching the CSS selector with text.
func (p *Page) Type(ctx context.Context, selector, text string) error {
	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return notFound(selector, err)
	}
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}

// Press sends a keyboard key to the page. Only keys the pipeline uses are
// mapped.
func (p *Page) Press(ctx context.Context, key string) error {
	switch key {
	case "Enter":
		return p.page.Context(ctx).Keyboard.Press(input.Enter)
	default:
		return leadgen.Errorf(leadgen.EINVALID, "unsupported key %q", key)
	}
}

// WaitVisible blocks until an element matching the CSS selector is visible
// or the context expires.
func (p *Page) WaitVisible(ctx context.Context, selector string) error {
	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return notFound(selector, err)
	}
	if err := el.WaitVisible(); err != nil {
		return notFound(selector, err)
	}
	return nil
}

// Close releases the page.
func (p *Page) Close() error {
	if p.router != nil {
		_ = p.router.Stop()
		p.router = nil
	}
	return p.page.Close()
}

// Element is a handle to a located element on a rod page.
type Element struct {
	el *rod.Element
}

// Text returns the element's rendered text content.
func (e *Element) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

// Attribute returns the named attribute value, or "" if absent.
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	value, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

// Visible reports whether the element is currently visible.
func (e *Element) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

// Click clicks the element.
func (e *Element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

// Element returns the first descendant matching the CSS selector.
func (e *Element) Element(ctx context.Context, selector string) (leadgen.Element, error) {
	el, err := e.el.Context(ctx).Element(selector)
	if err != nil {
		return nil, notFound(selector, err)
	}
	return &Element{el: el}, nil
}

// Scroll scrolls the element's content down by the given pixel amount.
func (e *Element) Scroll(ctx context.Context, pixels int) error {
	_, err := e.el.Context(ctx).Eval(`(y) => this.scrollBy(0, y)`, pixels)
	return err
}

// notFound converts a rod lookup failure into an ENOTFOUND application
// error so callers can distinguish "element absent" from infrastructure
// failures.
func notFound(selector string, err error) error {
	return leadgen.Errorf(leadgen.ENOTFOUND, "element %q not found: %s", selector, err)
}

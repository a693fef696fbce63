// Package mock provides function-field mock implementations of the leadgen
// interfaces for testing without a browser engine or a real store.
package mock

import (
	"context"

	"github.com/Mirnes420/leadgen"
)

// Compile-time interface verification.
var (
	_ leadgen.Browser = (*Browser)(nil)
	_ leadgen.Page    = (*Page)(nil)
	_ leadgen.Element = (*Element)(nil)
)

// Browser is a mock implementation of leadgen.Browser.
type Browser struct {
	NewPageFn func(ctx context.Context, opts ...leadgen.PageOption) (leadgen.Page, error)
	CloseFn   func() error
}

func (b *Browser) NewPage(ctx context.Context, opts ...leadgen.PageOption) (leadgen.Page, error) {
	return b.NewPageFn(ctx, opts...)
}

func (b *Browser) Close() error {
	if b.CloseFn == nil {
		return nil
	}
	return b.CloseFn()
}

// Page is a mock implementation of leadgen.Page.
type Page struct {
	NavigateFn      func(ctx context.Context, url string) error
	ContentFn       func(ctx context.Context) (string, error)
	ElementFn       func(ctx context.Context, selector string) (leadgen.Element, error)
	ElementsFn      func(ctx context.Context, selector string) ([]leadgen.Element, error)
	ElementByTextFn func(ctx context.Context, selector, pattern string) (leadgen.Element, error)
	TypeFn          func(ctx context.Context, selector, text string) error
	PressFn         func(ctx context.Context, key string) error
	WaitVisibleFn   func(ctx context.Context, selector string) error
	CloseFn         func() error
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	return p.NavigateFn(ctx, url)
}

func (p *Page) Content(ctx context.Context) (string, error) {
	return p.ContentFn(ctx)
}

func (p *Page) Element(ctx context.Context, selector string) (leadgen.Element, error) {
	return p.ElementFn(ctx, selector)
}

func (p *Page) Elements(ctx context.Context, selector string) ([]leadgen.Element, error) {
	return p.ElementsFn(ctx, selector)
}

func (p *Page) ElementByText(ctx context.Context, selector, pattern string) (leadgen.Element, error) {
	return p.ElementByTextFn(ctx, selector, pattern)
}

func (p *Page) Type(ctx context.Context, selector, text string) error {
	return p.TypeFn(ctx, selector, text)
}

func (p *Page) Press(ctx context.Context, key string) error {
	return p.PressFn(ctx, key)
}

func (p *Page) WaitVisible(ctx context.Context, selector string) error {
	return p.WaitVisibleFn(ctx, selector)
}

func (p *Page) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

// Element is a mock implementation of leadgen.Element.
type Element struct {
	TextFn      func(ctx context.Context) (string, error)
	AttributeFn func(ctx context.Context, name string) (string, error)
	VisibleFn   func(ctx context.Context) (bool, error)
	ClickFn     func(ctx context.Context) error
	ElementFn   func(ctx context.Context, selector string) (leadgen.Element, error)
	ScrollFn    func(ctx context.Context, pixels int) error
}

func (e *Element) Text(ctx context.Context) (string, error) {
	return e.TextFn(ctx)
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	return e.AttributeFn(ctx, name)
}

func (e *Element) Visible(ctx context.Context) (bool, error) {
	if e.VisibleFn == nil {
		return true, nil
	}
	return e.VisibleFn(ctx)
}

func (e *Element) Click(ctx context.Context) error {
	return e.ClickFn(ctx)
}

func (e *Element) Element(ctx context.Context, selector string) (leadgen.Element, error) {
	return e.ElementFn(ctx, selector)
}

func (e *Element) Scroll(ctx context.Context, pixels int) error {
	return e.ScrollFn(ctx, pixels)
}

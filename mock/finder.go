package mock

import (
	"context"

	"github.com/Mirnes420/leadgen"
)

// Compile-time interface verification.
var (
	_ leadgen.EmailFinder      = (*EmailFinder)(nil)
	_ leadgen.EmailExtractor   = (*EmailExtractor)(nil)
	_ leadgen.ConsentDismisser = (*ConsentDismisser)(nil)
)

// EmailFinder is a mock implementation of leadgen.EmailFinder.
type EmailFinder struct {
	FindFn func(ctx context.Context, website string) (string, error)
}

func (f *EmailFinder) Find(ctx context.Context, website string) (string, error) {
	return f.FindFn(ctx, website)
}

// EmailExtractor is a mock implementation of leadgen.EmailExtractor.
type EmailExtractor struct {
	ExtractFn func(html string) []string
}

func (e *EmailExtractor) Extract(html string) []string {
	return e.ExtractFn(html)
}

// ConsentDismisser is a mock implementation of leadgen.ConsentDismisser.
type ConsentDismisser struct {
	DismissFn func(ctx context.Context, page leadgen.Page) bool
}

func (c *ConsentDismisser) Dismiss(ctx context.Context, page leadgen.Page) bool {
	if c.DismissFn == nil {
		return false
	}
	return c.DismissFn(ctx, page)
}

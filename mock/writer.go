package mock

import (
	"context"

	"github.com/Mirnes420/leadgen"
)

var _ leadgen.LeadWriter = (*LeadWriter)(nil)

// LeadWriter is a mock implementation of leadgen.LeadWriter.
type LeadWriter struct {
	WriteLeadFn func(ctx context.Context, lead *leadgen.Lead) error
}

func (w *LeadWriter) WriteLead(ctx context.Context, lead *leadgen.Lead) error {
	return w.WriteLeadFn(ctx, lead)
}

package mock

import (
	"context"

	"github.com/Mirnes420/leadgen"
)

var _ leadgen.Mailer = (*Mailer)(nil)

// Mailer is a mock implementation of leadgen.Mailer.
type Mailer struct {
	SendFn func(ctx context.Context, toEmail, businessName, city string) error
}

func (m *Mailer) Send(ctx context.Context, toEmail, businessName, city string) error {
	return m.SendFn(ctx, toEmail, businessName, city)
}

package leadgen

import "context"

// Mailer delivers outreach messages to verified leads. The pipeline core
// never calls Send itself; it only guarantees that a Lead it hands off has
// a resolved email. Template placeholder substitution and transport are the
// implementation's concern.
type Mailer interface {
	// Send delivers one message to the address, personalized with the
	// business name and city.
	Send(ctx context.Context, toEmail, businessName, city string) error
}

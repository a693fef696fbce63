// Package slog provides logging decorators for the leadgen service
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mirnes420/leadgen"
)

// Ensure LoggingEmailFinder implements leadgen.EmailFinder.
var _ leadgen.EmailFinder = (*LoggingEmailFinder)(nil)

// LoggingEmailFinder wraps an EmailFinder with debug logging.
type LoggingEmailFinder struct {
	next   leadgen.EmailFinder
	logger *slog.Logger
}

// NewLoggingEmailFinder creates a new LoggingEmailFinder.
func NewLoggingEmailFinder(next leadgen.EmailFinder, logger *slog.Logger) *LoggingEmailFinder {
	return &LoggingEmailFinder{next: next, logger: logger}
}

// Find logs the website being mined and delegates to the wrapped finder.
func (f *LoggingEmailFinder) Find(ctx context.Context, website string) (email string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("email search",
			"website", website,
			"resolved", email != "" && email != leadgen.Unresolved,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Find(ctx, website)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mirnes420/leadgen"
)

// Ensure LoggingLeadWriter implements leadgen.LeadWriter.
var _ leadgen.LeadWriter = (*LoggingLeadWriter)(nil)

// LoggingLeadWriter wraps a LeadWriter with debug logging.
type LoggingLeadWriter struct {
	next   leadgen.LeadWriter
	logger *slog.Logger
}

// NewLoggingLeadWriter creates a new LoggingLeadWriter.
func NewLoggingLeadWriter(next leadgen.LeadWriter, logger *slog.Logger) *LoggingLeadWriter {
	return &LoggingLeadWriter{next: next, logger: logger}
}

// WriteLead logs the lead being appended and delegates to the wrapped
// writer.
func (w *LoggingLeadWriter) WriteLead(ctx context.Context, lead *leadgen.Lead) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("lead written",
			"name", lead.Name,
			"email", lead.Email,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteLead(ctx, lead)
}

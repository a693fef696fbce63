package scrape

import (
	"context"
	"log/slog"

	"github.com/Mirnes420/leadgen"
)

// Source says how a lead was produced.
type Source int

// Lead sources.
const (
	SourceFreshScrape Source = iota
	SourceCacheHit
)

// String returns the source name for logging.
func (s Source) String() string {
	switch s {
	case SourceFreshScrape:
		return "fresh_scrape"
	case SourceCacheHit:
		return "cache_hit"
	default:
		return "unknown"
	}
}

// Sink persists verified leads: it registers them in the dedup cache and
// appends them to the output stream, one row at a time, so partial
// progress survives failure.
type Sink struct {
	Cache  *Deduper
	Writer leadgen.LeadWriter

	Category    string
	City        string
	RequesterID string

	Logger *slog.Logger
}

// Record persists one verified lead. Freshly scraped leads are upserted
// into the global tier and linked to the requester; cache hits only gain
// the ownership link (the global record identified by leadID already
// exists).
//
// The row is appended to the output stream even when a store write fails:
// an already-known lead is still surfaced to the operator, with the
// ownership mismatch logged as a warning. Only an output-stream failure is
// returned as an error.
func (s *Sink) Record(ctx context.Context, lead *leadgen.Lead, source Source, leadID string) error {
	switch source {
	case SourceFreshScrape:
		id, err := s.Cache.UpsertGlobal(ctx, lead, s.Category, s.City)
		if err != nil {
			s.logger().Warn("global upsert failed", "name", lead.Name, "err", err)
		} else if err := s.Cache.LinkOwnership(ctx, s.RequesterID, id, lead.Name); err != nil {
			s.logger().Warn("ownership link failed", "name", lead.Name, "err", err)
		}
	case SourceCacheHit:
		if err := s.Cache.LinkOwnership(ctx, s.RequesterID, leadID, lead.Name); err != nil {
			s.logger().Warn("ownership link failed for cached lead", "name", lead.Name, "err", err)
		}
	}

	return s.Writer.WriteLead(ctx, lead)
}

func (s *Sink) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

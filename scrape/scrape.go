// Package scrape provides the lead discovery pipeline: it drives a
// map-style search session, checks the two-tier dedup cache before doing
// expensive website visits, mines contact emails from candidate websites,
// and persists verified leads incrementally so partial progress survives
// failure.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mirnes420/leadgen"
)

// Config holds the run configuration for one scraping session.
type Config struct {
	// Query is the search phrase submitted to the map UI. When empty it
	// is derived from Category and City ("<category> in <city>").
	Query string

	// Category and City annotate global lead records.
	Category string
	City     string

	// TargetCount is the number of verified leads to produce. The session
	// stops early when the result feed is exhausted.
	TargetCount int

	// RequesterID identifies the operator the run executes for; it scopes
	// the ownership dedup tier.
	RequesterID string
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.TargetCount < 1 {
		return leadgen.Errorf(leadgen.EINVALID, "target count must be at least 1")
	}
	if c.RequesterID == "" {
		return leadgen.Errorf(leadgen.EINVALID, "requester ID required")
	}
	if c.Query == "" && (c.Category == "" || c.City == "") {
		return leadgen.Errorf(leadgen.EINVALID, "query or category and city required")
	}
	return nil
}

// query returns the effective search phrase.
func (c *Config) query() string {
	if c.Query != "" {
		return c.Query
	}
	return fmt.Sprintf("%s in %s", c.Category, c.City)
}

// Runner wires the pipeline together for one run: search session, dedup
// cache, website email finder and result sink.
type Runner struct {
	Browser   leadgen.Browser
	Leads     leadgen.GlobalLeadService
	Ownership leadgen.OwnershipService
	Writer    leadgen.LeadWriter
	Extractor leadgen.EmailExtractor

	// Finder overrides the default website email finder when non-nil.
	Finder leadgen.EmailFinder

	Logger *slog.Logger
}

// Run executes one scraping session and returns the leads produced.
// A partial result is returned alongside the error when the run aborts
// mid-session.
func (r *Runner) Run(ctx context.Context, cfg Config) ([]leadgen.Lead, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cache := &Deduper{Leads: r.Leads, Ownership: r.Ownership, Logger: logger}

	finder := r.Finder
	if finder == nil {
		finder = &Finder{
			Browser:   r.Browser,
			Extractor: r.Extractor,
			Consent:   NewConsent(logger),
			Limiter:   NewDomainLimiter(1.0),
			Logger:    logger,
		}
	}

	sink := &Sink{
		Cache:       cache,
		Writer:      r.Writer,
		Category:    cfg.Category,
		City:        cfg.City,
		RequesterID: cfg.RequesterID,
		Logger:      logger,
	}

	// The session page stays open for the whole run; website visits get
	// their own short-lived pages from the same browser.
	pageCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	page, err := r.Browser.NewPage(pageCtx, leadgen.WithViewport(1920, 1080))
	if err != nil {
		return nil, fmt.Errorf("opening search page: %w", err)
	}
	defer page.Close()

	session := &Session{
		Page:    page,
		Consent: NewConsent(logger),
		Cache:   cache,
		Finder:  finder,
		Sink:    sink,
		Logger:  logger,
	}

	logger.Info("starting scrape",
		"query", cfg.query(),
		"target", cfg.TargetCount,
		"requester", cfg.RequesterID,
	)

	return session.Run(ctx, cfg.query(), cfg.TargetCount)
}

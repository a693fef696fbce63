package main

import (
	"fmt"

	"github.com/Mirnes420/leadgen"
	"github.com/Mirnes420/leadgen/csv"
	"github.com/Mirnes420/leadgen/goquery"
	"github.com/Mirnes420/leadgen/scrape"
	leadslog "github.com/Mirnes420/leadgen/slog"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	writer := csv.NewWriter(c.Output)
	if err := writer.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadgen.ErrorMessage(err))
		return err
	}
	defer writer.Close()

	runner := &scrape.Runner{
		Browser:   deps.Browser,
		Leads:     deps.Leads,
		Ownership: deps.Ownership,
		Writer:    leadslog.NewLoggingLeadWriter(writer, deps.Logger),
		Extractor: goquery.NewExtractor(),
		Logger:    deps.Logger,
	}

	leads, err := runner.Run(deps.Ctx, scrape.Config{
		Query:       c.Query,
		Category:    c.Category,
		City:        c.City,
		TargetCount: c.Count,
		RequesterID: c.Requester,
	})
	if err != nil {
		// A partial result is still on disk; say so before failing.
		if len(leads) > 0 {
			fmt.Fprintf(deps.Stdout, "Collected %d lead(s) before the run aborted (saved to %s)\n", len(leads), c.Output)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadgen.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Collected %d verified lead(s) (saved to %s)\n", len(leads), c.Output)
	return nil
}

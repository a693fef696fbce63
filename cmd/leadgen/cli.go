package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Mirnes420/leadgen"
	"github.com/Mirnes420/leadgen/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB        *sqlite.DB
	Leads     leadgen.GlobalLeadService
	Ownership leadgen.OwnershipService

	// Browser is wired only for the scrape command.
	Browser leadgen.Browser

	// Mailer is wired only for the send command.
	Mailer leadgen.Mailer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Discover local business leads and mine their contact emails"`
	Leads  LeadsCmd  `cmd:"" help:"List leads from the global cache"`
	Send   SendCmd   `cmd:"" help:"Send outreach email to leads from a CSV file"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Category  string `arg:"" help:"Business category to search for (e.g. plumbers)"`
	City      string `arg:"" help:"City to search in"`
	Requester string `short:"r" required:"" help:"Email identifying who the run is for"`
	Count     int    `short:"n" default:"50" help:"Number of verified leads to collect"`
	Output    string `short:"o" default:"leads.csv" help:"CSV file to append leads to"`
	Query     string `short:"q" help:"Override the search phrase"`
}

// LeadsCmd is the "leads" subcommand.
type LeadsCmd struct {
	Category string `help:"Filter by category"`
	City     string `help:"Filter by city"`
	Limit    int    `default:"50" help:"Maximum rows to show"`
	Offset   int    `help:"Rows to skip"`
}

// SendCmd is the "send" subcommand.
type SendCmd struct {
	File     string        `arg:"" default:"leads.csv" help:"CSV file of leads to contact"`
	City     string        `required:"" help:"City used to personalize the message"`
	Template string        `short:"t" help:"YAML file with subject and body templates"`
	Delay    time.Duration `default:"7s" help:"Pause between messages"`
}

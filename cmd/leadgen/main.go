package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/Mirnes420/leadgen"
	"github.com/Mirnes420/leadgen/rod"
	"github.com/Mirnes420/leadgen/smtp"
	"github.com/Mirnes420/leadgen/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	LeadService      leadgen.GlobalLeadService
	OwnershipService leadgen.OwnershipService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("leadgen"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'leadgen --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEADGEN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.LeadService = sqlite.NewGlobalLeadService(m.DB)
	m.OwnershipService = sqlite.NewOwnershipService(m.DB)
	deps.DB = m.DB
	deps.Leads = m.LeadService
	deps.Ownership = m.OwnershipService

	if cmd == "scrape" {
		browser, err := rod.NewBrowser()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()
		deps.Browser = browser
	}

	if cmd == "send" {
		mailer, err := newMailerFromEnv(cli.Send.Template)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set LEADGEN_SMTP_HOST, LEADGEN_SMTP_USER and LEADGEN_SMTP_PASS")
			return err
		}
		deps.Mailer = mailer
	}

	return kongCtx.Run(deps)
}

// newMailerFromEnv builds the outreach mailer from the SMTP account in the
// environment and an optional template file.
func newMailerFromEnv(templatePath string) (*smtp.Mailer, error) {
	port := 587
	if v := os.Getenv("LEADGEN_SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, leadgen.Errorf(leadgen.EINVALID, "invalid LEADGEN_SMTP_PORT %q", v)
		}
		port = p
	}

	cfg := smtp.Config{
		Host:     os.Getenv("LEADGEN_SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("LEADGEN_SMTP_USER"),
		Password: os.Getenv("LEADGEN_SMTP_PASS"),
		From:     os.Getenv("LEADGEN_SMTP_FROM"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tmpl := smtp.DefaultTemplate()
	if templatePath != "" {
		var err error
		tmpl, err = smtp.LoadTemplate(templatePath)
		if err != nil {
			return nil, err
		}
	}

	return smtp.NewMailer(cfg, tmpl), nil
}

func defaultDBPath() string {
	if path := os.Getenv("LEADGEN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "leadgen.db"
	}
	dir := filepath.Join(home, ".leadgen")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "leadgen.db")
}

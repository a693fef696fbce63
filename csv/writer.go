// Package csv provides the durable output stream for verified leads.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Mirnes420/leadgen"
)

// header is the first row of every output file.
var header = []string{"name", "website", "email"}

// Ensure Writer implements leadgen.LeadWriter at compile time.
var _ leadgen.LeadWriter = (*Writer)(nil)

// Writer appends leads to a CSV file one row at a time. The file is
// truncated and given a header row at Open, then appended to incrementally
// with a flush after every row, so a reader may safely tail it mid-run.
type Writer struct {
	path string
	file *os.File
	csv  *csv.Writer
}

// NewWriter creates a new Writer that writes to the given path.
// Open must be called before the first WriteLead.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Open truncates the output file and writes the header row.
func (w *Writer) Open() error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w.file = file
	w.csv = csv.NewWriter(file)

	if err := w.csv.Write(header); err != nil {
		file.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// WriteLead appends one lead row and flushes it to disk. Empty fields are
// written as the Unresolved sentinel so a row always has three columns with
// explicit values.
func (w *Writer) WriteLead(ctx context.Context, lead *leadgen.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.csv == nil {
		return leadgen.Errorf(leadgen.EINTERNAL, "output stream not open")
	}

	website := lead.Website
	if website == "" {
		website = leadgen.Unresolved
	}
	email := lead.Email
	if email == "" {
		email = leadgen.Unresolved
	}

	if err := w.csv.Write([]string{lead.Name, website, email}); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes pending rows and closes the file.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	w.csv.Flush()
	err := w.csv.Error()
	if closeErr := w.file.Close(); err == nil {
		err = closeErr
	}
	w.file = nil
	return err
}

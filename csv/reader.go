package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Mirnes420/leadgen"
)

// ReadLeads loads all leads from a CSV file previously produced by a
// Writer. The header row is required and skipped; short rows are padded
// with the unresolved sentinel.
func ReadLeads(path string) ([]leadgen.Lead, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open leads file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, leadgen.Errorf(leadgen.EINVALID, "leads file %s is empty", path)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var leads []leadgen.Lead
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read leads file: %w", err)
		}
		leads = append(leads, leadgen.Lead{
			Name:    field(record, 0),
			Website: field(record, 1),
			Email:   field(record, 2),
		})
	}
	return leads, nil
}

func field(record []string, i int) string {
	if i >= len(record) || record[i] == "" {
		return leadgen.Unresolved
	}
	return record[i]
}

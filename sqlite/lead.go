package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mirnes420/leadgen"
)

// Compile-time interface verification.
var _ leadgen.GlobalLeadService = (*GlobalLeadService)(nil)

// GlobalLeadService implements leadgen.GlobalLeadService using SQLite.
type GlobalLeadService struct {
	db *DB
}

// NewGlobalLeadService creates a new GlobalLeadService.
func NewGlobalLeadService(db *DB) *GlobalLeadService {
	return &GlobalLeadService{db: db}
}

// UpsertLead creates or refreshes a lead record keyed by email.
// The record identifier is stable: a conflicting upsert refreshes metadata
// and LastScraped but keeps the original row ID, which is returned.
func (s *GlobalLeadService) UpsertLead(ctx context.Context, lead *leadgen.GlobalLead) (string, error) {
	if err := lead.Validate(); err != nil {
		return "", err
	}

	if lead.Status == "" {
		lead.Status = leadgen.StatusVerified
	}
	lead.LastScraped = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO global_leads (id, name, email, website, category, city, status, last_scraped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			name = excluded.name,
			website = excluded.website,
			category = excluded.category,
			city = excluded.city,
			status = excluded.status,
			last_scraped = excluded.last_scraped
	`, uuid.New().String(), lead.Name, lead.Email, lead.Website, lead.Category, lead.City,
		lead.Status, lead.LastScraped.Format(time.RFC3339Nano))
	if err != nil {
		return "", err
	}

	// The conflict path keeps the existing row ID; read it back so callers
	// always see the stable identifier.
	var id string
	if err := s.db.QueryRowContext(ctx, `
		SELECT id FROM global_leads WHERE email = ?
	`, lead.Email).Scan(&id); err != nil {
		return "", err
	}

	lead.ID = id
	return id, nil
}

// FindLeadByName retrieves a lead record by business name.
// Returns ENOTFOUND if no record exists.
func (s *GlobalLeadService) FindLeadByName(ctx context.Context, name string) (*leadgen.GlobalLead, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, website, category, city, status, last_scraped
		FROM global_leads
		WHERE name = ?
		LIMIT 1
	`, name)

	lead, err := scanLead(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, leadgen.Errorf(leadgen.ENOTFOUND, "lead not found")
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// FindLeads retrieves lead records matching the filter, most recently
// scraped first.
func (s *GlobalLeadService) FindLeads(ctx context.Context, filter leadgen.LeadFilter) ([]*leadgen.GlobalLead, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, name, email, website, category, city, status, last_scraped FROM global_leads WHERE 1=1`)

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	if filter.City != nil {
		query.WriteString(" AND city = ?")
		args = append(args, *filter.City)
	}

	query.WriteString(" ORDER BY last_scraped DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*leadgen.GlobalLead
	for rows.Next() {
		lead, err := scanLead(rows.Scan)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// scanLead scans one global_leads row using the given scan function.
func scanLead(scan func(dest ...any) error) (*leadgen.GlobalLead, error) {
	var lead leadgen.GlobalLead
	var lastScraped string

	if err := scan(&lead.ID, &lead.Name, &lead.Email, &lead.Website,
		&lead.Category, &lead.City, &lead.Status, &lastScraped); err != nil {
		return nil, err
	}

	var err error
	lead.LastScraped, err = parseRFC3339(lastScraped, "last_scraped")
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

package sqlite

import (
	"context"

	"github.com/Mirnes420/leadgen"
)

// Compile-time interface verification.
var _ leadgen.OwnershipService = (*OwnershipService)(nil)

// OwnershipService implements leadgen.OwnershipService using SQLite.
type OwnershipService struct {
	db *DB
}

// NewOwnershipService creates a new OwnershipService.
func NewOwnershipService(db *DB) *OwnershipService {
	return &OwnershipService{db: db}
}

// HasLead reports whether the requester already owns a lead with the given
// business name.
func (s *OwnershipService) HasLead(ctx context.Context, requesterID, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM requester_leads
			WHERE requester_id = ? AND lead_name = ?
		)
	`, requesterID, name).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// LinkLead records that the requester has been shown the lead. A second
// link for the same (requester, lead) pair refreshes the existing row
// instead of creating a duplicate.
func (s *OwnershipService) LinkLead(ctx context.Context, link *leadgen.OwnershipLink) error {
	if err := link.Validate(); err != nil {
		return err
	}

	if link.Status == "" {
		link.Status = leadgen.StatusPending
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requester_leads (requester_id, lead_id, lead_name, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (requester_id, lead_id) DO UPDATE SET
			lead_name = excluded.lead_name,
			status = excluded.status
	`, link.RequesterID, link.LeadID, link.LeadName, link.Status)
	return err
}

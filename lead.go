package leadgen

import (
	"context"
	"time"
)

// Unresolved is the sentinel for "looked, found nothing". It is distinct
// from absence: a Lead with an Unresolved email was scraped and yielded no
// address, not skipped.
const Unresolved = "unresolved"

// Lead status values.
const (
	StatusVerified = "verified"
	StatusPending  = "pending"
)

// Candidate is one business entry surfaced by the search UI before its
// detail pane is opened. Identity key is the exact display name.
type Candidate struct {
	Name string
}

// Lead is the unit written to the output stream and returned to the caller.
type Lead struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Email   string `json:"email"`
}

// Resolved reports whether the lead carries a usable email address.
func (l *Lead) Resolved() bool {
	return l.Email != "" && l.Email != Unresolved
}

// GlobalLead is the cross-requester cache entry for a business whose email
// has been resolved by any requester. It is keyed uniquely by Email at the
// storage level; repeated upserts for the same email refresh metadata and
// never create duplicates.
type GlobalLead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	Status      string    `json:"status"`
	LastScraped time.Time `json:"lastScraped"`
}

// Validate returns an error if the lead record contains invalid fields.
func (l *GlobalLead) Validate() error {
	if l.Name == "" {
		return Errorf(EINVALID, "lead name required")
	}
	if l.Email == "" || l.Email == Unresolved {
		return Errorf(EINVALID, "lead email required")
	}
	return nil
}

// OwnershipLink records that a specific requester has already been shown a
// global lead. It is keyed uniquely by (RequesterID, LeadID); a requester
// never receives the same lead twice across runs.
type OwnershipLink struct {
	RequesterID string `json:"requesterId"`
	LeadID      string `json:"leadId"`
	LeadName    string `json:"leadName"`
	Status      string `json:"status"`
}

// Validate returns an error if the link contains invalid fields.
func (o *OwnershipLink) Validate() error {
	if o.RequesterID == "" {
		return Errorf(EINVALID, "requester ID required")
	}
	if o.LeadID == "" {
		return Errorf(EINVALID, "lead ID required")
	}
	return nil
}

// LeadFilter represents a filter for FindLeads.
type LeadFilter struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	City     *string `json:"city"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// GlobalLeadService manages the cross-requester global lead collection.
type GlobalLeadService interface {
	// FindLeadByName retrieves a verified lead record by business name.
	// Returns ENOTFOUND if no record exists.
	FindLeadByName(ctx context.Context, name string) (*GlobalLead, error)

	// FindLeads retrieves lead records matching the filter.
	FindLeads(ctx context.Context, filter LeadFilter) ([]*GlobalLead, error)

	// UpsertLead creates or refreshes a lead record keyed by email and
	// returns the record's identifier. The identifier is stable across
	// repeated upserts for the same email; LastScraped is refreshed on
	// every call.
	UpsertLead(ctx context.Context, lead *GlobalLead) (string, error)
}

// OwnershipService manages the per-requester ownership collection.
type OwnershipService interface {
	// HasLead reports whether the requester already owns a lead with the
	// given business name.
	HasLead(ctx context.Context, requesterID, name string) (bool, error)

	// LinkLead records that the requester has been shown the lead.
	// Idempotent by (RequesterID, LeadID).
	LinkLead(ctx context.Context, link *OwnershipLink) error
}

// LeadWriter appends leads to a durable output stream. The stream is
// append-only within a run: a written row is never rewritten or retracted.
type LeadWriter interface {
	WriteLead(ctx context.Context, lead *Lead) error
}

package scrape

import (
	"context"
	"log/slog"

	"github.com/Mirnes420/leadgen"
)

// Deduper is the two-tier deduplication cache consulted before any
// expensive website visit: a per-requester ownership tier and a
// cross-requester global lead tier.
//
// The two tiers fail differently on store outages, and the asymmetry is
// deliberate: the ownership check fails open (assume new, keep scraping;
// worst case is a duplicate contact) while the global lookup fails closed
// to a miss (forces a full scrape, safe but wasteful). A transient store
// outage therefore never blocks a run.
type Deduper struct {
	Leads     leadgen.GlobalLeadService
	Ownership leadgen.OwnershipService
	Logger    *slog.Logger
}

// IsNewForRequester reports whether the requester has not yet been shown a
// lead with this name. Store failures assume new.
func (d *Deduper) IsNewForRequester(ctx context.Context, name, requesterID string) bool {
	owned, err := d.Ownership.HasLead(ctx, requesterID, name)
	if err != nil {
		d.logger().Warn("ownership check failed, assuming new", "name", name, "err", err)
		return true
	}
	return !owned
}

// LookupGlobal returns the verified global record for the name, or nil on
// a miss. Store failures are treated as a miss.
func (d *Deduper) LookupGlobal(ctx context.Context, name string) *leadgen.GlobalLead {
	lead, err := d.Leads.FindLeadByName(ctx, name)
	if err != nil {
		if leadgen.ErrorCode(err) != leadgen.ENOTFOUND {
			d.logger().Warn("global lookup failed, treating as miss", "name", name, "err", err)
		}
		return nil
	}
	return lead
}

// UpsertGlobal registers a freshly scraped lead in the global tier and
// returns the record's stable identifier. Idempotent by email.
func (d *Deduper) UpsertGlobal(ctx context.Context, lead *leadgen.Lead, category, city string) (string, error) {
	website := lead.Website
	if website == leadgen.Unresolved {
		website = ""
	}

	return d.Leads.UpsertLead(ctx, &leadgen.GlobalLead{
		Name:     lead.Name,
		Email:    lead.Email,
		Website:  website,
		Category: category,
		City:     city,
		Status:   leadgen.StatusVerified,
	})
}

// LinkOwnership records that the requester has been shown the lead.
// Idempotent by (requester, lead).
func (d *Deduper) LinkOwnership(ctx context.Context, requesterID, leadID, name string) error {
	return d.Ownership.LinkLead(ctx, &leadgen.OwnershipLink{
		RequesterID: requesterID,
		LeadID:      leadID,
		LeadName:    name,
		Status:      leadgen.StatusPending,
	})
}

func (d *Deduper) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

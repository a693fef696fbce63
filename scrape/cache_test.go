package scrape_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mirnes420/leadgen"
	"github.com/Mirnes420/leadgen/mock"
	"github.com/Mirnes420/leadgen/scrape"
)

func TestDeduper_IsNewForRequester(t *testing.T) {
	t.Parallel()

	t.Run("new when the requester has no such lead", func(t *testing.T) {
		t.Parallel()

		deduper := &scrape.Deduper{
			Ownership: &mock.OwnershipService{
				HasLeadFn: func(context.Context, string, string) (bool, error) { return false, nil },
			},
			Logger: discardLogger(),
		}
		assert.True(t, deduper.IsNewForRequester(context.Background(), "Acme Plumbing", "op@example.com"))
	})

	t.Run("not new when the requester already owns it", func(t *testing.T) {
		t.Parallel()

		deduper := &scrape.Deduper{
			Ownership: &mock.OwnershipService{
				HasLeadFn: func(context.Context, string, string) (bool, error) { return true, nil },
			},
			Logger: discardLogger(),
		}
		assert.False(t, deduper.IsNewForRequester(context.Background(), "Acme Plumbing", "op@example.com"))
	})

	t.Run("fails open on store error", func(t *testing.T) {
		t.Parallel()

		deduper := &scrape.Deduper{
			Ownership: &mock.OwnershipService{
				HasLeadFn: func(context.Context, string, string) (bool, error) {
					return false, leadgen.Errorf(leadgen.EINTERNAL, "database is locked")
				},
			},
			Logger: discardLogger(),
		}
		assert.True(t, deduper.IsNewForRequester(context.Background(), "Acme Plumbing", "op@example.com"),
			"a store outage must not stop the run")
	})
}

func TestDeduper_LookupGlobal(t *testing.T) {
	t.Parallel()

	t.Run("returns the known record", func(t *testing.T) {
		t.Parallel()

		want := &leadgen.GlobalLead{ID: "global-1", Name: "Acme Plumbing", Email: "a@acme.de"}
		deduper := &scrape.Deduper{
			Leads: &mock.GlobalLeadService{
				FindLeadByNameFn: func(context.Context, string) (*leadgen.GlobalLead, error) {
					return want, nil
				},
			},
			Logger: discardLogger(),
		}
		assert.Equal(t, want, deduper.LookupGlobal(context.Background(), "Acme Plumbing"))
	})

	t.Run("miss returns nil", func(t *testing.T) {
		t.Parallel()

		deduper := &scrape.Deduper{
			Leads: &mock.GlobalLeadService{
				FindLeadByNameFn: func(context.Context, string) (*leadgen.GlobalLead, error) {
					return nil, leadgen.Errorf(leadgen.ENOTFOUND, "lead not found")
				},
			},
			Logger: discardLogger(),
		}
		assert.Nil(t, deduper.LookupGlobal(context.Background(), "Acme Plumbing"))
	})

	t.Run("fails closed on store error", func(t *testing.T) {
		t.Parallel()

		deduper := &scrape.Deduper{
			Leads: &mock.GlobalLeadService{
				FindLeadByNameFn: func(context.Context, string) (*leadgen.GlobalLead, error) {
					return nil, leadgen.Errorf(leadgen.EINTERNAL, "database is locked")
				},
			},
			Logger: discardLogger(),
		}
		assert.Nil(t, deduper.LookupGlobal(context.Background(), "Acme Plumbing"),
			"an unreadable global tier must force a full scrape, never a stale hit")
	})
}

func TestDeduper_UpsertGlobal(t *testing.T) {
	t.Parallel()

	t.Run("registers the lead with category and city", func(t *testing.T) {
		t.Parallel()

		var got *leadgen.GlobalLead
		deduper := &scrape.Deduper{
			Leads: &mock.GlobalLeadService{
				UpsertLeadFn: func(_ context.Context, lead *leadgen.GlobalLead) (string, error) {
					got = lead
					return "global-1", nil
				},
			},
			Logger: discardLogger(),
		}

		id, err := deduper.UpsertGlobal(context.Background(), &leadgen.Lead{
			Name:    "Acme Plumbing",
			Website: "https://acme.de",
			Email:   "a@acme.de",
		}, "plumbers", "Berlin")

		require.NoError(t, err)
		assert.Equal(t, "global-1", id)
		require.NotNil(t, got)
		assert.Equal(t, "plumbers", got.Category)
		assert.Equal(t, "Berlin", got.City)
		assert.Equal(t, leadgen.StatusVerified, got.Status)
	})

	t.Run("unresolved website is stored empty", func(t *testing.T) {
		t.Parallel()

		var got *leadgen.GlobalLead
		deduper := &scrape.Deduper{
			Leads: &mock.GlobalLeadService{
				UpsertLeadFn: func(_ context.Context, lead *leadgen.GlobalLead) (string, error) {
					got = lead
					return "global-1", nil
				},
			},
			Logger: discardLogger(),
		}

		_, err := deduper.UpsertGlobal(context.Background(), &leadgen.Lead{
			Name:    "Acme Plumbing",
			Website: leadgen.Unresolved,
			Email:   "a@acme.de",
		}, "plumbers", "Berlin")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.Website)
	})
}

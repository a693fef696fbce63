package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mirnes420/leadgen"
	"github.com/Mirnes420/leadgen/sqlite"
)

func TestGlobalLeadService_UpsertLead(t *testing.T) {
	t.Parallel()

	t.Run("creates record with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGlobalLeadService(db)
		ctx := context.Background()

		lead := &leadgen.GlobalLead{
			Name:     "Acme Plumbing",
			Email:    "a@acme.de",
			Website:  "https://acme.de",
			Category: "plumbers",
			City:     "Berlin",
		}

		id, err := svc.UpsertLead(ctx, lead)
		require.NoError(t, err)

		assert.NotEmpty(t, id)
		assert.Equal(t, id, lead.ID)
		assert.Equal(t, leadgen.StatusVerified, lead.Status)
		assert.False(t, lead.LastScraped.IsZero(), "LastScraped should be set")
	})

	t.Run("is idempotent by email with a stable identifier", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGlobalLeadService(db)
		ctx := context.Background()

		first := &leadgen.GlobalLead{
			Name:     "Acme Plumbing",
			Email:    "a@acme.de",
			Category: "plumbers",
			City:     "Berlin",
		}
		firstID, err := svc.UpsertLead(ctx, first)
		require.NoError(t, err)

		// Same email, different metadata.
		second := &leadgen.GlobalLead{
			Name:     "Acme Plumbing GmbH",
			Email:    "a@acme.de",
			Category: "heating",
			City:     "Hamburg",
		}
		secondID, err := svc.UpsertLead(ctx, second)
		require.NoError(t, err)

		assert.Equal(t, firstID, secondID, "identifier should be stable across upserts")
		assert.False(t, second.LastScraped.Before(first.LastScraped), "LastScraped should advance")

		leads, err := svc.FindLeads(ctx, leadgen.LeadFilter{})
		require.NoError(t, err)
		require.Len(t, leads, 1, "upsert must never create a duplicate")
		assert.Equal(t, "Acme Plumbing GmbH", leads[0].Name)
		assert.Equal(t, "Hamburg", leads[0].City)
	})

	t.Run("rejects record without usable email", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGlobalLeadService(db)

		_, err := svc.UpsertLead(context.Background(), &leadgen.GlobalLead{
			Name:  "Acme Plumbing",
			Email: leadgen.Unresolved,
		})
		require.Error(t, err)
		assert.Equal(t, leadgen.EINVALID, leadgen.ErrorCode(err))
	})
}

func TestGlobalLeadService_FindLeadByName(t *testing.T) {
	t.Parallel()

	t.Run("finds a stored record by name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGlobalLeadService(db)
		ctx := context.Background()

		_, err := svc.UpsertLead(ctx, &leadgen.GlobalLead{
			Name:    "City Electric",
			Email:   "c@cityelectric.de",
			Website: "https://cityelectric.de",
		})
		require.NoError(t, err)

		found, err := svc.FindLeadByName(ctx, "City Electric")
		require.NoError(t, err)
		assert.Equal(t, "c@cityelectric.de", found.Email)
		assert.Equal(t, "https://cityelectric.de", found.Website)
		assert.NotEmpty(t, found.ID)
	})

	t.Run("returns ENOTFOUND for unknown name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGlobalLeadService(db)

		_, err := svc.FindLeadByName(context.Background(), "No Such Business")
		require.Error(t, err)
		assert.Equal(t, leadgen.ENOTFOUND, leadgen.ErrorCode(err))
	})

	t.Run("name matching is exact and case sensitive", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGlobalLeadService(db)
		ctx := context.Background()

		_, err := svc.UpsertLead(ctx, &leadgen.GlobalLead{
			Name:  "Best Pipes",
			Email: "b@bestpipes.de",
		})
		require.NoError(t, err)

		_, err = svc.FindLeadByName(ctx, "best pipes")
		assert.Equal(t, leadgen.ENOTFOUND, leadgen.ErrorCode(err))
	})
}

func TestGlobalLeadService_FindLeads(t *testing.T) {
	t.Parallel()

	t.Run("filters by category and city", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGlobalLeadService(db)
		ctx := context.Background()

		seed := []*leadgen.GlobalLead{
			{Name: "Acme Plumbing", Email: "a@acme.de", Category: "plumbers", City: "Berlin"},
			{Name: "Best Pipes", Email: "b@bestpipes.de", Category: "plumbers", City: "Berlin"},
			{Name: "City Electric", Email: "c@cityelectric.de", Category: "electricians", City: "Berlin"},
		}
		for _, lead := range seed {
			_, err := svc.UpsertLead(ctx, lead)
			require.NoError(t, err)
		}

		category := "plumbers"
		city := "Berlin"
		leads, err := svc.FindLeads(ctx, leadgen.LeadFilter{Category: &category, City: &city})
		require.NoError(t, err)
		assert.Len(t, leads, 2)
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGlobalLeadService(db)
		ctx := context.Background()

		for _, lead := range []*leadgen.GlobalLead{
			{Name: "A", Email: "a@a.de"},
			{Name: "B", Email: "b@b.de"},
		} {
			_, err := svc.UpsertLead(ctx, lead)
			require.NoError(t, err)
		}

		leads, err := svc.FindLeads(ctx, leadgen.LeadFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, leads, 1)
	})
}

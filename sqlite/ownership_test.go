package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mirnes420/leadgen"
	"github.com/Mirnes420/leadgen/sqlite"
)

// createTestLead stores a global lead record and returns its identifier.
func createTestLead(t *testing.T, db *sqlite.DB, name, email string) string {
	t.Helper()
	svc := sqlite.NewGlobalLeadService(db)
	id, err := svc.UpsertLead(context.Background(), &leadgen.GlobalLead{Name: name, Email: email})
	require.NoError(t, err)
	return id
}

func TestOwnershipService_LinkLead(t *testing.T) {
	t.Parallel()

	t.Run("creates a link visible to HasLead", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewOwnershipService(db)
		ctx := context.Background()

		leadID := createTestLead(t, db, "Acme Plumbing", "a@acme.de")

		err := svc.LinkLead(ctx, &leadgen.OwnershipLink{
			RequesterID: "operator@example.com",
			LeadID:      leadID,
			LeadName:    "Acme Plumbing",
		})
		require.NoError(t, err)

		owned, err := svc.HasLead(ctx, "operator@example.com", "Acme Plumbing")
		require.NoError(t, err)
		assert.True(t, owned)
	})

	t.Run("linking twice never produces two links", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewOwnershipService(db)
		ctx := context.Background()

		leadID := createTestLead(t, db, "Best Pipes", "b@bestpipes.de")

		link := &leadgen.OwnershipLink{
			RequesterID: "operator@example.com",
			LeadID:      leadID,
			LeadName:    "Best Pipes",
		}
		require.NoError(t, svc.LinkLead(ctx, link))
		require.NoError(t, svc.LinkLead(ctx, link))

		var count int
		err := db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM requester_leads
			WHERE requester_id = ? AND lead_id = ?
		`, link.RequesterID, link.LeadID).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects link without requester or lead ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewOwnershipService(db)
		ctx := context.Background()

		err := svc.LinkLead(ctx, &leadgen.OwnershipLink{LeadID: "some-id"})
		assert.Equal(t, leadgen.EINVALID, leadgen.ErrorCode(err))

		err = svc.LinkLead(ctx, &leadgen.OwnershipLink{RequesterID: "operator@example.com"})
		assert.Equal(t, leadgen.EINVALID, leadgen.ErrorCode(err))
	})
}

func TestOwnershipService_HasLead(t *testing.T) {
	t.Parallel()

	t.Run("is scoped per requester", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewOwnershipService(db)
		ctx := context.Background()

		leadID := createTestLead(t, db, "City Electric", "c@cityelectric.de")

		require.NoError(t, svc.LinkLead(ctx, &leadgen.OwnershipLink{
			RequesterID: "first@example.com",
			LeadID:      leadID,
			LeadName:    "City Electric",
		}))

		owned, err := svc.HasLead(ctx, "first@example.com", "City Electric")
		require.NoError(t, err)
		assert.True(t, owned)

		owned, err = svc.HasLead(ctx, "second@example.com", "City Electric")
		require.NoError(t, err)
		assert.False(t, owned, "ownership must not leak across requesters")
	})

	t.Run("returns false for unknown name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewOwnershipService(db)

		owned, err := svc.HasLead(context.Background(), "operator@example.com", "Nobody")
		require.NoError(t, err)
		assert.False(t, owned)
	})
}

package mock

import (
	"context"

	"github.com/Mirnes420/leadgen"
)

// Compile-time interface verification.
var (
	_ leadgen.GlobalLeadService = (*GlobalLeadService)(nil)
	_ leadgen.OwnershipService  = (*OwnershipService)(nil)
)

// GlobalLeadService is a mock implementation of leadgen.GlobalLeadService.
type GlobalLeadService struct {
	FindLeadByNameFn func(ctx context.Context, name string) (*leadgen.GlobalLead, error)
	FindLeadsFn      func(ctx context.Context, filter leadgen.LeadFilter) ([]*leadgen.GlobalLead, error)
	UpsertLeadFn     func(ctx context.Context, lead *leadgen.GlobalLead) (string, error)
}

func (s *GlobalLeadService) FindLeadByName(ctx context.Context, name string) (*leadgen.GlobalLead, error) {
	return s.FindLeadByNameFn(ctx, name)
}

func (s *GlobalLeadService) FindLeads(ctx context.Context, filter leadgen.LeadFilter) ([]*leadgen.GlobalLead, error) {
	return s.FindLeadsFn(ctx, filter)
}

func (s *GlobalLeadService) UpsertLead(ctx context.Context, lead *leadgen.GlobalLead) (string, error) {
	return s.UpsertLeadFn(ctx, lead)
}

// OwnershipService is a mock implementation of leadgen.OwnershipService.
type OwnershipService struct {
	HasLeadFn  func(ctx context.Context, requesterID, name string) (bool, error)
	LinkLeadFn func(ctx context.Context, link *leadgen.OwnershipLink) error
}

func (s *OwnershipService) HasLead(ctx context.Context, requesterID, name string) (bool, error) {
	return s.HasLeadFn(ctx, requesterID, name)
}

func (s *OwnershipService) LinkLead(ctx context.Context, link *leadgen.OwnershipLink) error {
	return s.LinkLeadFn(ctx, link)
}

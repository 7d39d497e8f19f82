// Package catalog exposes the clinic's priced procedure table. Plans
// freeze snapshots of this data; edits here never touch existing plans.
package catalog

import (
	"context"
	"fmt"

	"github.com/echodent/backend/internal/domain/catalog"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProcedureService manages the procedure price table
type ProcedureService struct {
	procedures catalog.ProcedureRepository
}

// NewProcedureService creates a new ProcedureService
func NewProcedureService(procedures catalog.ProcedureRepository) *ProcedureService {
	return &ProcedureService{procedures: procedures}
}

// CreateProcedure adds a priced procedure to the catalog
func (s *ProcedureService) CreateProcedure(ctx context.Context, actorID uuid.UUID, name string, defaultPrice valueobject.Money) (*catalog.Procedure, error) {
	procedure, err := catalog.NewProcedure(actorID, name, defaultPrice)
	if err != nil {
		return nil, err
	}
	if err := s.procedures.Save(ctx, procedure); err != nil {
		return nil, err
	}
	return procedure, nil
}

// UpdateProcedure renames and/or reprices a catalog procedure. Plans
// created before the change keep their frozen snapshots.
func (s *ProcedureService) UpdateProcedure(ctx context.Context, actorID, procedureID uuid.UUID, name *string, defaultPrice *valueobject.Money) (*catalog.Procedure, error) {
	procedure, err := s.procedures.FindByID(ctx, procedureID)
	if err != nil {
		return nil, shared.NewNotFoundError(fmt.Sprintf("Procedure %s not found", procedureID))
	}

	if name != nil {
		if err := procedure.Rename(*name); err != nil {
			return nil, err
		}
	}
	if defaultPrice != nil {
		if err := procedure.Reprice(*defaultPrice); err != nil {
			return nil, err
		}
	}

	if err := s.procedures.Save(ctx, procedure); err != nil {
		return nil, err
	}
	return procedure, nil
}

// GetProcedure loads one catalog procedure
func (s *ProcedureService) GetProcedure(ctx context.Context, procedureID uuid.UUID) (*catalog.Procedure, error) {
	procedure, err := s.procedures.FindByID(ctx, procedureID)
	if err != nil {
		return nil, shared.NewNotFoundError(fmt.Sprintf("Procedure %s not found", procedureID))
	}
	return procedure, nil
}

// ListProcedures returns the price table
func (s *ProcedureService) ListProcedures(ctx context.Context, filter shared.Filter) (*shared.Paginated[*catalog.Procedure], error) {
	return s.procedures.FindAll(ctx, filter)
}

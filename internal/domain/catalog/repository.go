package catalog

import (
	"context"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProcedureRepository defines the interface for procedure persistence
type ProcedureRepository interface {
	// FindByID finds a procedure by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Procedure, error)

	// FindAll returns procedures ordered by name, paginated
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Procedure], error)

	// Save creates or updates a procedure
	Save(ctx context.Context, procedure *Procedure) error

	// Count counts procedures
	Count(ctx context.Context) (int64, error)
}

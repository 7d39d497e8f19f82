package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/echodent/backend/internal/domain/catalog"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProcedureRepository implements catalog.ProcedureRepository using GORM
type GormProcedureRepository struct {
	db *gorm.DB
}

// NewGormProcedureRepository creates a new GormProcedureRepository
func NewGormProcedureRepository(db *gorm.DB) *GormProcedureRepository {
	return &GormProcedureRepository{db: db}
}

var _ catalog.ProcedureRepository = (*GormProcedureRepository)(nil)

// FindByID finds a procedure by ID
func (r *GormProcedureRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Procedure, error) {
	var model models.ProcedureModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find procedure: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns procedures ordered by name, paginated
func (r *GormProcedureRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*catalog.Procedure], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ProcedureModel{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count procedures: %w", err)
	}

	var procedureModels []models.ProcedureModel
	query := r.db.WithContext(ctx).Order("name asc")
	query = applyPagination(query, filter)
	if err := query.Find(&procedureModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}

	procedures := make([]*catalog.Procedure, len(procedureModels))
	for i := range procedureModels {
		procedures[i] = procedureModels[i].ToDomain()
	}
	result := shared.NewPaginated(procedures, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Save creates or updates a procedure
func (r *GormProcedureRepository) Save(ctx context.Context, procedure *catalog.Procedure) error {
	model := models.ProcedureModelFromDomain(procedure)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save procedure: %w", err)
	}
	return nil
}

// Count counts procedures
func (r *GormProcedureRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProcedureModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count procedures: %w", err)
	}
	return count, nil
}

// applyPagination applies filter paging to a query. A non-positive page
// size disables paging.
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}
	return query
}

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTreatmentPlanRepository implements ledger.TreatmentPlanRepository using GORM
type GormTreatmentPlanRepository struct {
	db *gorm.DB
}

// NewGormTreatmentPlanRepository creates a new GormTreatmentPlanRepository
func NewGormTreatmentPlanRepository(db *gorm.DB) *GormTreatmentPlanRepository {
	return &GormTreatmentPlanRepository{db: db}
}

var _ ledger.TreatmentPlanRepository = (*GormTreatmentPlanRepository)(nil)

// FindByID finds a treatment plan by ID with its line items
func (r *GormTreatmentPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.TreatmentPlan, error) {
	var model models.TreatmentPlanModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find treatment plan: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByPatient returns the patient's plans, newest first
func (r *GormTreatmentPlanRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ledger.TreatmentPlan], error) {
	return r.findPaginated(ctx, filter, "patient_id = ?", patientID)
}

// FindByStatus returns plans in a given lifecycle status
func (r *GormTreatmentPlanRepository) FindByStatus(ctx context.Context, status ledger.PlanStatus, filter shared.Filter) (*shared.Paginated[*ledger.TreatmentPlan], error) {
	return r.findPaginated(ctx, filter, "status = ?", status.String())
}

func (r *GormTreatmentPlanRepository) findPaginated(ctx context.Context, filter shared.Filter, cond string, args ...any) (*shared.Paginated[*ledger.TreatmentPlan], error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.TreatmentPlanModel{}).
		Where(cond, args...).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count treatment plans: %w", err)
	}

	var planModels []models.TreatmentPlanModel
	query := r.db.WithContext(ctx).
		Where(cond, args...).
		Order("created_at desc").
		Preload("Lines")
	query = applyPagination(query, filter)
	if err := query.Find(&planModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list treatment plans: %w", err)
	}

	plans := make([]*ledger.TreatmentPlan, len(planModels))
	for i := range planModels {
		plans[i] = planModels[i].ToDomain()
	}
	result := shared.NewPaginated(plans, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Save creates or updates a treatment plan with its line items. Lines are
// replaced wholesale: the frozen snapshot rows on a plan always mirror
// the aggregate exactly.
func (r *GormTreatmentPlanRepository) Save(ctx context.Context, plan *ledger.TreatmentPlan) error {
	model := models.TreatmentPlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.PlanLineModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear plan lines: %w", err)
		}
		if err := tx.Save(model).Error; err != nil {
			return fmt.Errorf("failed to save treatment plan: %w", err)
		}
		return nil
	})
}

// Count counts treatment plans
func (r *GormTreatmentPlanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TreatmentPlanModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count treatment plans: %w", err)
	}
	return count, nil
}

package persistence

import (
	"context"
	"fmt"

	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements ledger.InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

var _ ledger.InstallmentRepository = (*GormInstallmentRepository)(nil)

// FindByPlan returns a plan's forecast installments in sequence order
func (r *GormInstallmentRepository) FindByPlan(ctx context.Context, planID uuid.UUID) ([]*ledger.Installment, error) {
	var installmentModels []models.InstallmentModel
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("sequence asc").
		Find(&installmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}

	installments := make([]*ledger.Installment, len(installmentModels))
	for i := range installmentModels {
		installments[i] = installmentModels[i].ToDomain()
	}
	return installments, nil
}

// ReplaceForPlan atomically swaps a plan's forecast for a new one.
// Reforecasting is all-or-nothing: the old schedule never survives next
// to a partial new one.
func (r *GormInstallmentRepository) ReplaceForPlan(ctx context.Context, planID uuid.UUID, installments []*ledger.Installment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.InstallmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear installments: %w", err)
		}
		for _, installment := range installments {
			model := models.InstallmentModelFromDomain(installment)
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to insert installment %d: %w", installment.Sequence, err)
			}
		}
		return nil
	})
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCashDayRepository implements ledger.CashDayRepository using GORM
type GormCashDayRepository struct {
	db *gorm.DB
}

// NewGormCashDayRepository creates a new GormCashDayRepository
func NewGormCashDayRepository(db *gorm.DB) *GormCashDayRepository {
	return &GormCashDayRepository{db: db}
}

var _ ledger.CashDayRepository = (*GormCashDayRepository)(nil)

// FindByDate returns the closing record for a calendar date
func (r *GormCashDayRepository) FindByDate(ctx context.Context, date time.Time) (*ledger.CashDay, error) {
	var model models.CashDayModel
	if err := r.db.WithContext(ctx).First(&model, "date = ?", ledger.NormalizeCashDate(date)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash day: %w", err)
	}
	return model.ToDomain(), nil
}

// FindRange returns closing records between two dates, newest first
func (r *GormCashDayRepository) FindRange(ctx context.Context, from, to time.Time, filter shared.Filter) (*shared.Paginated[*ledger.CashDay], error) {
	from = ledger.NormalizeCashDate(from)
	to = ledger.NormalizeCashDate(to)

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.CashDayModel{}).
		Where("date BETWEEN ? AND ?", from, to).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count cash days: %w", err)
	}

	var dayModels []models.CashDayModel
	query := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date desc")
	query = applyPagination(query, filter)
	if err := query.Find(&dayModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list cash days: %w", err)
	}

	days := make([]*ledger.CashDay, len(dayModels))
	for i := range dayModels {
		days[i] = dayModels[i].ToDomain()
	}
	result := shared.NewPaginated(days, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Save creates or updates a cash day record
func (r *GormCashDayRepository) Save(ctx context.Context, day *ledger.CashDay) error {
	model := models.CashDayModelFromDomain(day)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save cash day: %w", err)
	}
	return nil
}

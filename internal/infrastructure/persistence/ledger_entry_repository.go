package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/echodent/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements ledger.LedgerEntryRepository using
// GORM. The entry log is append-only: there is deliberately no update or
// delete method here.
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

var _ ledger.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)

// FindByID finds a ledger entry by ID
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByPlan returns all entries for a plan in recording order
func (r *GormLedgerEntryRepository) FindByPlan(ctx context.Context, planID uuid.UUID) ([]*ledger.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("created_at asc").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return toDomainEntries(entryModels), nil
}

// FindByDate returns all entries dated on the given cash day
func (r *GormLedgerEntryRepository) FindByDate(ctx context.Context, date time.Time) ([]*ledger.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("entry_date = ?", ledger.NormalizeCashDate(date)).
		Order("created_at asc").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list ledger entries by date: %w", err)
	}
	return toDomainEntries(entryModels), nil
}

// FindReversalOf returns the entry that voids the given entry
func (r *GormLedgerEntryRepository) FindReversalOf(ctx context.Context, entryID uuid.UUID) (*ledger.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "reversed_entry_id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reversal entry: %w", err)
	}
	return model.ToDomain(), nil
}

// Append inserts a new entry. Create, never Save: committed rows are
// immutable.
func (r *GormLedgerEntryRepository) Append(ctx context.Context, entry *ledger.LedgerEntry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// SumPaymentsByPlan totals payment entries for a plan, reversals included
func (r *GormLedgerEntryRepository) SumPaymentsByPlan(ctx context.Context, planID uuid.UUID) (valueobject.Money, error) {
	return r.sumPayments(ctx, "plan_id = ?", planID)
}

// SumPaymentsByDate totals payment entries dated on the given cash day
func (r *GormLedgerEntryRepository) SumPaymentsByDate(ctx context.Context, date time.Time) (valueobject.Money, error) {
	return r.sumPayments(ctx, "entry_date = ?", ledger.NormalizeCashDate(date))
}

func (r *GormLedgerEntryRepository) sumPayments(ctx context.Context, cond string, arg any) (valueobject.Money, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("kind = ?", ledger.EntryKindPayment.String()).
		Where(cond, arg).
		Select("SUM(amount)").
		Scan(&total).Error; err != nil {
		return valueobject.ZeroBRL(), fmt.Errorf("failed to sum payments: %w", err)
	}
	if !total.Valid {
		return valueobject.ZeroBRL(), nil
	}
	return valueobject.NewMoneyBRL(total.Decimal), nil
}

func toDomainEntries(entryModels []models.LedgerEntryModel) []*ledger.LedgerEntry {
	entries := make([]*ledger.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries
}

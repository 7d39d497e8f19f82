package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/echodent/backend/internal/domain/ledger/acl"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// staffRoleDentist is the role value that qualifies a staff member to
// own treatment plans
const staffRoleDentist = "DENTIST"

// GormStaffDirectory implements acl.StaffDirectory against the staff table
type GormStaffDirectory struct {
	db *gorm.DB
}

// NewGormStaffDirectory creates a new GormStaffDirectory
func NewGormStaffDirectory(db *gorm.DB) *GormStaffDirectory {
	return &GormStaffDirectory{db: db}
}

var _ acl.StaffDirectory = (*GormStaffDirectory)(nil)

// FindDentist returns the active dentist with the given ID
func (d *GormStaffDirectory) FindDentist(ctx context.Context, id uuid.UUID) (*acl.StaffRef, error) {
	var model models.StaffModel
	if err := d.db.WithContext(ctx).
		First(&model, "id = ? AND role = ? AND is_active = ?", id, staffRoleDentist, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find dentist: %w", err)
	}
	return &acl.StaffRef{
		ID:       model.ID,
		Name:     model.Name,
		IsActive: model.IsActive,
	}, nil
}

// GormPatientDirectory implements acl.PatientDirectory against the patients table
type GormPatientDirectory struct {
	db *gorm.DB
}

// NewGormPatientDirectory creates a new GormPatientDirectory
func NewGormPatientDirectory(db *gorm.DB) *GormPatientDirectory {
	return &GormPatientDirectory{db: db}
}

var _ acl.PatientDirectory = (*GormPatientDirectory)(nil)

// FindPatient returns the patient with the given ID
func (d *GormPatientDirectory) FindPatient(ctx context.Context, id uuid.UUID) (*acl.PatientRef, error) {
	var model models.PatientModel
	if err := d.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}
	return &acl.PatientRef{
		ID:   model.ID,
		Name: model.Name,
	}, nil
}

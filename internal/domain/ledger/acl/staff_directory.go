// Package acl holds the anti-corruption layer between the financial
// ledger and the clinic's identity records. The ledger only ever needs
// existence checks and display names, so the contract stays minimal.
package acl

import (
	"context"

	"github.com/google/uuid"
)

// StaffRef is the ledger-side view of a clinic staff member
type StaffRef struct {
	ID       uuid.UUID
	Name     string
	IsActive bool
}

// PatientRef is the ledger-side view of a patient record
type PatientRef struct {
	ID   uuid.UUID
	Name string
}

// StaffDirectory resolves staff references owned by the identity context
type StaffDirectory interface {
	// FindDentist returns the dentist with the given ID, or
	// shared.ErrNotFound when no active dentist matches.
	FindDentist(ctx context.Context, id uuid.UUID) (*StaffRef, error)
}

// PatientDirectory resolves patient references owned by the patient context
type PatientDirectory interface {
	// FindPatient returns the patient with the given ID, or
	// shared.ErrNotFound when no patient matches.
	FindPatient(ctx context.Context, id uuid.UUID) (*PatientRef, error)
}

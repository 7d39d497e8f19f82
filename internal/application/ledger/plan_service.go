package ledger

import (
	"context"
	"fmt"

	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/echodent/backend/internal/domain/ledger/acl"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanService drives the treatment plan lifecycle
type PlanService struct {
	scope    TransactionScope
	staff    acl.StaffDirectory
	patients acl.PatientDirectory
	notifier Notifier
}

// NewPlanService creates a new PlanService
func NewPlanService(scope TransactionScope, staff acl.StaffDirectory, patients acl.PatientDirectory, notifier Notifier) *PlanService {
	return &PlanService{
		scope:    scope,
		staff:    staff,
		patients: patients,
		notifier: notifier,
	}
}

// PlanLineRequest is one requested line item. Lines referencing a
// catalog procedure freeze its current name and price unless an explicit
// price override is given; free-form lines require both name and price.
type PlanLineRequest struct {
	ProcedureID   *uuid.UUID
	Name          string
	PriceOverride *decimal.Decimal
	ToothFaceNote string
}

// CreatePlanRequest carries everything needed to open a proposed plan
type CreatePlanRequest struct {
	ActorID   uuid.UUID
	PatientID uuid.UUID
	DentistID *uuid.UUID
	Lines     []PlanLineRequest
}

// PlanDetail is a plan together with its derived financial position
type PlanDetail struct {
	Plan    *ledger.TreatmentPlan
	Balance ledger.BalanceStatement
}

// CreatePlan opens a PROPOSED plan, freezing the catalog name and price
// of every referenced procedure at this moment
func (s *PlanService) CreatePlan(ctx context.Context, req CreatePlanRequest) (*ledger.TreatmentPlan, error) {
	if _, err := s.patients.FindPatient(ctx, req.PatientID); err != nil {
		return nil, shared.NewNotFoundError(fmt.Sprintf("Patient %s not found", req.PatientID))
	}
	if req.DentistID != nil {
		if _, err := s.staff.FindDentist(ctx, *req.DentistID); err != nil {
			return nil, shared.NewNotFoundError(fmt.Sprintf("Dentist %s not found", *req.DentistID))
		}
	}

	var plan *ledger.TreatmentPlan
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lines, err := s.resolveLines(ctx, repos, req.Lines)
		if err != nil {
			return err
		}

		plan, err = ledger.NewTreatmentPlan(req.ActorID, req.PatientID, req.DentistID, lines)
		if err != nil {
			return err
		}

		return repos.Plans.Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypePlan,
		fmt.Sprintf("Plano de tratamento criado (total %s)", plan.Total.StringFixed(2)),
		req.ActorID, &plan.PatientID)

	return plan, nil
}

// ApprovePlan seals a proposed plan with the given discount
func (s *PlanService) ApprovePlan(ctx context.Context, actorID, planID uuid.UUID, discount valueobject.Money) (*ledger.TreatmentPlan, error) {
	var plan *ledger.TreatmentPlan
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plan, err = repos.Plans.FindByID(ctx, planID)
		if err != nil {
			return err
		}
		if err := plan.Approve(actorID, discount); err != nil {
			return err
		}
		return repos.Plans.Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypePlan,
		fmt.Sprintf("Plano %s aprovado (total %s)", plan.ID, plan.Total.StringFixed(2)),
		actorID, &plan.PatientID)

	return plan, nil
}

// ReplaceLines swaps a proposed plan's line items
func (s *PlanService) ReplaceLines(ctx context.Context, actorID, planID uuid.UUID, lineReqs []PlanLineRequest) (*ledger.TreatmentPlan, error) {
	var plan *ledger.TreatmentPlan
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plan, err = repos.Plans.FindByID(ctx, planID)
		if err != nil {
			return err
		}

		lines, err := s.resolveLines(ctx, repos, lineReqs)
		if err != nil {
			return err
		}
		if err := plan.ReplaceLines(lines); err != nil {
			return err
		}
		return repos.Plans.Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypePlan,
		fmt.Sprintf("Itens do plano %s atualizados (subtotal %s)", plan.ID, plan.Subtotal.StringFixed(2)),
		actorID, &plan.PatientID)

	return plan, nil
}

// CompletePlan marks an approved plan's treatment as finished
func (s *PlanService) CompletePlan(ctx context.Context, actorID, planID uuid.UUID) (*ledger.TreatmentPlan, error) {
	var plan *ledger.TreatmentPlan
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plan, err = repos.Plans.FindByID(ctx, planID)
		if err != nil {
			return err
		}
		if err := plan.Complete(actorID); err != nil {
			return err
		}
		return repos.Plans.Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypePlan,
		fmt.Sprintf("Plano %s concluído", plan.ID), actorID, &plan.PatientID)

	return plan, nil
}

// CancelPlan abandons a plan with a written reason
func (s *PlanService) CancelPlan(ctx context.Context, actorID, planID uuid.UUID, reason string) (*ledger.TreatmentPlan, error) {
	var plan *ledger.TreatmentPlan
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plan, err = repos.Plans.FindByID(ctx, planID)
		if err != nil {
			return err
		}
		if err := plan.Cancel(actorID, reason); err != nil {
			return err
		}
		return repos.Plans.Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypePlan,
		fmt.Sprintf("Plano %s cancelado: %s", plan.ID, plan.CancelReason),
		actorID, &plan.PatientID)

	return plan, nil
}

// CreateStandaloneReceipt records a one-off settled charge: a phantom
// COMPLETED plan plus its full payment, committed atomically so the
// patient balance is untouched.
func (s *PlanService) CreateStandaloneReceipt(ctx context.Context, actorID, patientID uuid.UUID, dentistID *uuid.UUID, amount valueobject.Money, description string) (*ledger.TreatmentPlan, error) {
	if _, err := s.patients.FindPatient(ctx, patientID); err != nil {
		return nil, shared.NewNotFoundError(fmt.Sprintf("Patient %s not found", patientID))
	}
	if dentistID != nil {
		if _, err := s.staff.FindDentist(ctx, *dentistID); err != nil {
			return nil, shared.NewNotFoundError(fmt.Sprintf("Dentist %s not found", *dentistID))
		}
	}

	var plan *ledger.TreatmentPlan
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plan, err = ledger.NewSettledPlan(actorID, patientID, dentistID, amount, description)
		if err != nil {
			return err
		}
		if err := repos.Plans.Save(ctx, plan); err != nil {
			return err
		}

		payment, err := ledger.NewPayment(actorID, plan, amount, ledger.PaymentMethodCash, plan.CreatedAt, description, nil)
		if err != nil {
			return err
		}
		return repos.Entries.Append(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypeFinance,
		fmt.Sprintf("Recibo avulso emitido (%s)", amount.StringFixed(2)),
		actorID, &patientID)

	return plan, nil
}

// GetPlan loads a plan with its balance recomputed from the full ledger
func (s *PlanService) GetPlan(ctx context.Context, planID uuid.UUID) (*PlanDetail, error) {
	var detail *PlanDetail
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.Plans.FindByID(ctx, planID)
		if err != nil {
			return err
		}
		entries, err := repos.Entries.FindByPlan(ctx, planID)
		if err != nil {
			return err
		}
		detail = &PlanDetail{Plan: plan, Balance: ledger.ComputeBalance(plan, entries)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListPlansByPatient returns the patient's plans, newest first
func (s *PlanService) ListPlansByPatient(ctx context.Context, patientID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ledger.TreatmentPlan], error) {
	var page *shared.Paginated[*ledger.TreatmentPlan]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		page, err = repos.Plans.FindByPatient(ctx, patientID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// GetPatientBalance folds every committed plan of the patient into one
// outstanding figure: sum of plan totals (approved and completed) plus
// adjustments minus payments.
func (s *PlanService) GetPatientBalance(ctx context.Context, patientID uuid.UUID) (valueobject.Money, error) {
	if _, err := s.patients.FindPatient(ctx, patientID); err != nil {
		return valueobject.ZeroBRL(), shared.NewNotFoundError(fmt.Sprintf("Patient %s not found", patientID))
	}

	balance := valueobject.ZeroBRL()
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		page, err := repos.Plans.FindByPatient(ctx, patientID, shared.UnpagedFilter())
		if err != nil {
			return err
		}
		for _, plan := range page.Items {
			if !plan.Status.AcceptsEntries() {
				continue
			}
			entries, err := repos.Entries.FindByPlan(ctx, plan.ID)
			if err != nil {
				return err
			}
			statement := ledger.ComputeBalance(plan, entries)
			balance, err = balance.Add(statement.BalanceDue)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return valueobject.ZeroBRL(), err
	}
	return balance, nil
}

// resolveLines materializes line requests, freezing catalog snapshots
func (s *PlanService) resolveLines(ctx context.Context, repos TransactionalRepositories, lineReqs []PlanLineRequest) ([]ledger.PlanLine, error) {
	if len(lineReqs) == 0 {
		return nil, shared.NewValidationError("A plan requires at least one line item")
	}

	lines := make([]ledger.PlanLine, 0, len(lineReqs))
	for _, lr := range lineReqs {
		if lr.ProcedureID == nil {
			if lr.PriceOverride == nil {
				return nil, shared.NewValidationError("Free-form lines require an explicit price")
			}
			line, err := ledger.NewFreeFormLine(lr.Name, valueobject.NewMoneyBRL(*lr.PriceOverride), lr.ToothFaceNote)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
			continue
		}

		procedure, err := repos.Procedures.FindByID(ctx, *lr.ProcedureID)
		if err != nil {
			return nil, shared.NewNotFoundError(fmt.Sprintf("Procedure %s not found in catalog", *lr.ProcedureID))
		}
		price := procedure.GetDefaultPriceMoney()
		if lr.PriceOverride != nil {
			price = valueobject.NewMoneyBRL(*lr.PriceOverride)
		}
		line, err := ledger.NewPlanLine(procedure.ID, procedure.Name, price, lr.ToothFaceNote)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

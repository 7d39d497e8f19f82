package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/echodent/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// ScheduleService manages installment forecasts. Forecasts are cosmetic:
// regenerating one discards the previous schedule wholesale and never
// touches the ledger.
type ScheduleService struct {
	scope    TransactionScope
	notifier Notifier
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(scope TransactionScope, notifier Notifier) *ScheduleService {
	return &ScheduleService{scope: scope, notifier: notifier}
}

// ScheduleEntry is one installment with its derived status
type ScheduleEntry struct {
	Installment *ledger.Installment
	Status      ledger.InstallmentStatus
}

// GenerateSchedule replaces a plan's forecast with count equal monthly
// shares starting at firstDueDate. The replace is atomic: on any failure
// the previous schedule survives untouched.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, actorID, planID uuid.UUID, count int, firstDueDate time.Time) ([]*ledger.Installment, error) {
	var installments []*ledger.Installment
	var patientID uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.Plans.FindByID(ctx, planID)
		if err != nil {
			return err
		}
		patientID = plan.PatientID

		installments, err = ledger.ForecastSchedule(plan, count, firstDueDate)
		if err != nil {
			return err
		}
		return repos.Installments.ReplaceForPlan(ctx, planID, installments)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyTypeFinance,
		fmt.Sprintf("Carnê do plano %s gerado em %d parcela(s)", planID, count),
		actorID, &patientID)

	return installments, nil
}

// GetSchedule returns a plan's forecast with each installment's status
// derived from the current payment total
func (s *ScheduleService) GetSchedule(ctx context.Context, planID uuid.UUID) ([]ScheduleEntry, error) {
	var schedule []ScheduleEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Plans.FindByID(ctx, planID); err != nil {
			return err
		}
		installments, err := repos.Installments.FindByPlan(ctx, planID)
		if err != nil {
			return err
		}
		totalPaid, err := repos.Entries.SumPaymentsByPlan(ctx, planID)
		if err != nil {
			return err
		}

		statuses := ledger.ScheduleStatuses(installments, totalPaid)
		schedule = make([]ScheduleEntry, 0, len(installments))
		for _, inst := range installments {
			schedule = append(schedule, ScheduleEntry{Installment: inst, Status: statuses[inst.Sequence]})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

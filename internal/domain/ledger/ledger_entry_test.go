package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")
	seq := 1

	entry, err := NewPayment(uuid.New(), plan, valueobject.MustMoneyBRL("100.00"), PaymentMethodPix,
		time.Date(2026, 3, 15, 14, 30, 0, 0, time.FixedZone("BRT", -3*3600)), "Entrada", &seq)

	require.NoError(t, err)
	assert.Equal(t, EntryKindPayment, entry.Kind)
	assert.Equal(t, plan.ID, entry.PlanID)
	assert.Equal(t, "100.00", entry.Amount.StringFixed(2))
	require.NotNil(t, entry.PaymentMethod)
	assert.Equal(t, PaymentMethodPix, *entry.PaymentMethod)
	require.NotNil(t, entry.InstallmentSeq)
	assert.Equal(t, 1, *entry.InstallmentSeq)
	assert.False(t, entry.IsReversal())

	// date keyed to the UTC calendar day
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), entry.EntryDate)

	events := entry.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeEntryRecorded, events[0].EventType())
}

func TestNewPayment_Errors(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")
	badSeq := 0

	tests := []struct {
		name     string
		plan     *TreatmentPlan
		amount   string
		method   PaymentMethod
		seq      *int
		wantCode string
	}{
		{"zero amount", plan, "0.00", PaymentMethodCash, nil, shared.CodeValidation},
		{"negative amount", plan, "-50.00", PaymentMethodCash, nil, shared.CodeValidation},
		{"unknown method", plan, "50.00", PaymentMethod("BARTER"), nil, shared.CodeValidation},
		{"non positive sequence", plan, "50.00", PaymentMethodCash, &badSeq, shared.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPayment(uuid.New(), tt.plan, valueobject.MustMoneyBRL(tt.amount), tt.method, time.Now(), "", tt.seq)
			require.Error(t, err)
			assert.True(t, shared.IsDomainErrorWithCode(err, tt.wantCode))
		})
	}

	t.Run("proposed plan rejects entries", func(t *testing.T) {
		proposed, err := NewTreatmentPlan(uuid.New(), uuid.New(), nil, []PlanLine{mustLine(t, "Limpeza", "120.00")})
		require.NoError(t, err)

		_, err = NewPayment(uuid.New(), proposed, valueobject.MustMoneyBRL("50.00"), PaymentMethodCash, time.Now(), "", nil)
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeInvalidState))
	})

	t.Run("cancelled plan rejects entries", func(t *testing.T) {
		cancelled := newApprovedPlan(t, "120.00")
		require.NoError(t, cancelled.Cancel(uuid.New(), "Gave up"))

		_, err := NewPayment(uuid.New(), cancelled, valueobject.MustMoneyBRL("50.00"), PaymentMethodCash, time.Now(), "", nil)
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeInvalidState))
	})
}

func TestNewAdjustment(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")

	t.Run("negative adjustment", func(t *testing.T) {
		entry, err := NewAdjustment(uuid.New(), plan, valueobject.MustMoneyBRL("-50.00"), time.Now(), "Cortesia na restauração")

		require.NoError(t, err)
		assert.Equal(t, EntryKindAdjustment, entry.Kind)
		assert.Equal(t, "-50.00", entry.Amount.StringFixed(2))
		assert.Equal(t, "Cortesia na restauração", entry.Description)
		assert.Nil(t, entry.PaymentMethod)
	})

	t.Run("positive adjustment", func(t *testing.T) {
		entry, err := NewAdjustment(uuid.New(), plan, valueobject.MustMoneyBRL("80.00"), time.Now(), "Material adicional")

		require.NoError(t, err)
		assert.Equal(t, "80.00", entry.Amount.StringFixed(2))
	})

	t.Run("reason is trimmed and mandatory", func(t *testing.T) {
		_, err := NewAdjustment(uuid.New(), plan, valueobject.MustMoneyBRL("-50.00"), time.Now(), "   ")
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeValidation))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := NewAdjustment(uuid.New(), plan, valueobject.ZeroBRL(), time.Now(), "Nada")
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeValidation))
	})
}

func TestNewReversal(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")
	original, err := NewPayment(uuid.New(), plan, valueobject.MustMoneyBRL("100.00"), PaymentMethodCard, time.Now(), "", nil)
	require.NoError(t, err)

	reversal, err := NewReversal(uuid.New(), original, "Cartão recusado depois")

	require.NoError(t, err)
	assert.Equal(t, original.Kind, reversal.Kind)
	assert.Equal(t, "-100.00", reversal.Amount.StringFixed(2))
	require.NotNil(t, reversal.ReversedEntryID)
	assert.Equal(t, original.ID, *reversal.ReversedEntryID)
	assert.True(t, reversal.IsReversal())
	assert.True(t, strings.HasPrefix(reversal.Description, "Estorno ref. lanc. "+original.ID.String()))
	assert.Contains(t, reversal.Description, "Cartão recusado depois")
	assert.Equal(t, NormalizeCashDate(time.Now()), reversal.EntryDate)
}

func TestNewReversal_OfAdjustment(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")
	original, err := NewAdjustment(uuid.New(), plan, valueobject.MustMoneyBRL("-50.00"), time.Now(), "Cortesia")
	require.NoError(t, err)

	reversal, err := NewReversal(uuid.New(), original, "")

	require.NoError(t, err)
	assert.Equal(t, EntryKindAdjustment, reversal.Kind)
	assert.Equal(t, "50.00", reversal.Amount.StringFixed(2))
	assert.Equal(t, "Estorno ref. lanc. "+original.ID.String(), reversal.Description)
}

func TestNewReversal_OfReversalRejected(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")
	original, err := NewPayment(uuid.New(), plan, valueobject.MustMoneyBRL("100.00"), PaymentMethodCash, time.Now(), "", nil)
	require.NoError(t, err)
	reversal, err := NewReversal(uuid.New(), original, "")
	require.NoError(t, err)

	_, err = NewReversal(uuid.New(), reversal, "")

	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeValidation))
}

func TestComputeBalance(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")
	actor := uuid.New()

	payment, err := NewPayment(actor, plan, valueobject.MustMoneyBRL("100.00"), PaymentMethodCash, time.Now(), "", nil)
	require.NoError(t, err)
	adjustment, err := NewAdjustment(actor, plan, valueobject.MustMoneyBRL("-50.00"), time.Now(), "Cortesia")
	require.NoError(t, err)

	balance := ComputeBalance(plan, []*LedgerEntry{payment, adjustment})

	assert.Equal(t, "300.00", balance.Total.StringFixed(2))
	assert.Equal(t, "100.00", balance.TotalPaid.StringFixed(2))
	assert.Equal(t, "-50.00", balance.TotalAdjusted.StringFixed(2))
	assert.Equal(t, "150.00", balance.BalanceDue.StringFixed(2))
	assert.False(t, balance.IsSettled())
}

func TestComputeBalance_ReversalSelfCorrects(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")
	actor := uuid.New()

	payment, err := NewPayment(actor, plan, valueobject.MustMoneyBRL("100.00"), PaymentMethodCash, time.Now(), "", nil)
	require.NoError(t, err)
	reversal, err := NewReversal(actor, payment, "Lançado em duplicidade")
	require.NoError(t, err)

	balance := ComputeBalance(plan, []*LedgerEntry{payment, reversal})

	assert.Equal(t, "0.00", balance.TotalPaid.StringFixed(2))
	assert.Equal(t, "300.00", balance.BalanceDue.StringFixed(2))
}

func TestComputeBalance_NeverClamped(t *testing.T) {
	plan := newApprovedPlan(t, "100.00")
	actor := uuid.New()

	payment, err := NewPayment(actor, plan, valueobject.MustMoneyBRL("150.00"), PaymentMethodCash, time.Now(), "", nil)
	require.NoError(t, err)

	balance := ComputeBalance(plan, []*LedgerEntry{payment})

	assert.Equal(t, "-50.00", balance.BalanceDue.StringFixed(2))
	assert.True(t, balance.HasCredit())
	assert.True(t, balance.IsSettled())
}

func TestComputeBalance_EmptyLedger(t *testing.T) {
	plan := newApprovedPlan(t, "300.00")

	balance := ComputeBalance(plan, nil)

	assert.Equal(t, "0.00", balance.TotalPaid.StringFixed(2))
	assert.Equal(t, "300.00", balance.BalanceDue.StringFixed(2))
}

package ledger

import (
	"testing"
	"time"

	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCashDate(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "strips time of day",
			in:   time.Date(2026, 3, 15, 14, 30, 45, 123, time.UTC),
			want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "late evening local crosses into next UTC day",
			in:   time.Date(2026, 3, 15, 22, 30, 0, 0, brt),
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight stays put",
			in:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCashDate(tt.in))
		})
	}
}

func TestNewCashDay(t *testing.T) {
	day, err := NewCashDay(uuid.New(), time.Date(2026, 3, 15, 18, 45, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, CashDayStatusOpen, day.Status)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), day.Date)
	assert.False(t, day.IsClosed())
	assert.Nil(t, day.ClosedAt)
}

func TestNewCashDay_ZeroDate(t *testing.T) {
	_, err := NewCashDay(uuid.New(), time.Time{})
	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeValidation))
}

func TestCashDay_Close(t *testing.T) {
	day, err := NewCashDay(uuid.New(), time.Now())
	require.NoError(t, err)
	closer := uuid.New()

	err = day.Close(closer, valueobject.MustMoneyBRL("1540.50"), "Conferido com a gaveta")

	require.NoError(t, err)
	assert.True(t, day.IsClosed())
	assert.Equal(t, "1540.50", day.ClosedTotal.StringFixed(2))
	require.NotNil(t, day.ClosedAt)
	require.NotNil(t, day.ClosedBy)
	assert.Equal(t, closer, *day.ClosedBy)
	assert.Equal(t, "Conferido com a gaveta", day.ClosingNotes)
	assert.Equal(t, 2, day.GetVersion())

	events := day.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeCashDayClosed, events[0].EventType())
}

func TestCashDay_CloseTwiceFails(t *testing.T) {
	day, err := NewCashDay(uuid.New(), time.Now())
	require.NoError(t, err)
	require.NoError(t, day.Close(uuid.New(), valueobject.MustMoneyBRL("100.00"), ""))
	frozen := day.ClosedTotal

	err = day.Close(uuid.New(), valueobject.MustMoneyBRL("999.00"), "")

	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeAlreadyClosed))
	assert.True(t, day.ClosedTotal.Equal(frozen))
}

func TestCashDay_CloseWithNegativeTotal(t *testing.T) {
	// a day dominated by reversals can legitimately close negative
	day, err := NewCashDay(uuid.New(), time.Now())
	require.NoError(t, err)

	err = day.Close(uuid.New(), valueobject.MustMoneyBRL("-75.00"), "Estornos do dia anterior")

	require.NoError(t, err)
	assert.Equal(t, "-75.00", day.ClosedTotal.StringFixed(2))
}

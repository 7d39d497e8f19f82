package catalog

import (
	"context"
	"testing"

	"github.com/echodent/backend/internal/domain/catalog"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/echodent/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProcedureRepository struct {
	mock.Mock
}

func (m *MockProcedureRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Procedure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Procedure), args.Error(1)
}

func (m *MockProcedureRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*catalog.Procedure], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*catalog.Procedure]), args.Error(1)
}

func (m *MockProcedureRepository) Save(ctx context.Context, procedure *catalog.Procedure) error {
	args := m.Called(ctx, procedure)
	return args.Error(0)
}

func (m *MockProcedureRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestProcedureService_CreateProcedure(t *testing.T) {
	repo := new(MockProcedureRepository)
	service := NewProcedureService(repo)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Procedure")).Return(nil)

	procedure, err := service.CreateProcedure(context.Background(), uuid.New(), "Limpeza", valueobject.MustMoneyBRL("120.00"))

	require.NoError(t, err)
	assert.Equal(t, "Limpeza", procedure.Name)
	assert.Equal(t, "120.00", procedure.DefaultPrice.StringFixed(2))
	repo.AssertExpectations(t)
}

func TestProcedureService_CreateProcedure_InvalidSkipsSave(t *testing.T) {
	repo := new(MockProcedureRepository)
	service := NewProcedureService(repo)

	_, err := service.CreateProcedure(context.Background(), uuid.New(), "  ", valueobject.MustMoneyBRL("120.00"))

	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeValidation))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProcedureService_UpdateProcedure(t *testing.T) {
	repo := new(MockProcedureRepository)
	service := NewProcedureService(repo)

	procedure, err := catalog.NewProcedure(uuid.New(), "Limpeza", valueobject.MustMoneyBRL("120.00"))
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, procedure.ID).Return(procedure, nil)
	repo.On("Save", mock.Anything, procedure).Return(nil)

	newName := "Profilaxia"
	newPrice := valueobject.MustMoneyBRL("140.00")
	updated, err := service.UpdateProcedure(context.Background(), uuid.New(), procedure.ID, &newName, &newPrice)

	require.NoError(t, err)
	assert.Equal(t, "Profilaxia", updated.Name)
	assert.Equal(t, "140.00", updated.DefaultPrice.StringFixed(2))
}

func TestProcedureService_ListProcedures(t *testing.T) {
	repo := new(MockProcedureRepository)
	service := NewProcedureService(repo)

	procedure, err := catalog.NewProcedure(uuid.New(), "Limpeza", valueobject.MustMoneyBRL("120.00"))
	require.NoError(t, err)

	page := shared.NewPaginated([]*catalog.Procedure{procedure}, 1, 1, 20)
	filter := shared.DefaultFilter()
	repo.On("FindAll", mock.Anything, filter).Return(&page, nil)

	result, err := service.ListProcedures(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, "Limpeza", result.Items[0].Name)
}

func TestProcedureService_UpdateProcedure_NotFound(t *testing.T) {
	repo := new(MockProcedureRepository)
	service := NewProcedureService(repo)
	procedureID := uuid.New()

	repo.On("FindByID", mock.Anything, procedureID).Return(nil, shared.ErrNotFound)

	_, err := service.UpdateProcedure(context.Background(), uuid.New(), procedureID, nil, nil)

	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorWithCode(err, shared.CodeNotFound))
}

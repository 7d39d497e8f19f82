package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/echodent/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProcedureRepository creates a GormProcedureRepository with a mocked SQL connection
func newMockProcedureRepository(t *testing.T) (*GormProcedureRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProcedureRepository(gormDB), mock, mockDB
}

func TestGormProcedureRepository_FindAll(t *testing.T) {
	t.Run("returns a paginated page ordered by name", func(t *testing.T) {
		repo, mock, mockDB := newMockProcedureRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "procedures"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		rows := sqlmock.NewRows([]string{"id", "version", "name", "default_price"}).
			AddRow(uuid.New(), 1, "Limpeza", decimal.NewFromInt(120)).
			AddRow(uuid.New(), 1, "Restauração", decimal.NewFromInt(200))
		mock.ExpectQuery(`SELECT \* FROM "procedures" ORDER BY name asc LIMIT .*`).
			WithArgs(2).
			WillReturnRows(rows)

		page, err := repo.FindAll(context.Background(), shared.Filter{Page: 1, PageSize: 2})

		assert.NoError(t, err)
		require.NotNil(t, page)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Limpeza", page.Items[0].Name)
		assert.Equal(t, "Restauração", page.Items[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns an empty page when the catalog is empty", func(t *testing.T) {
		repo, mock, mockDB := newMockProcedureRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "procedures"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT \* FROM "procedures" ORDER BY name asc LIMIT .*`).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "name", "default_price"}))

		page, err := repo.FindAll(context.Background(), shared.Filter{Page: 1, PageSize: 10})

		assert.NoError(t, err)
		require.NotNil(t, page)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

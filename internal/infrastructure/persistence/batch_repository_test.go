package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

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

	return gormDB, mock, mockDB
}

func newMockBatchRepository(t *testing.T) (*GormBatchRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormBatchRepository(gormDB), mock, mockDB
}

func batchColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "deleted_at",
		"ingredient_id", "import_id",
		"quantity", "remaining_quantity", "expiry_date", "unit_price", "status",
	}
}

func TestGormBatchRepository_FindByID(t *testing.T) {
	t.Run("finds existing batch", func(t *testing.T) {
		repo, mock, mockDB := newMockBatchRepository(t)
		defer mockDB.Close()

		batchID := uuid.New()
		ingredientID := uuid.New()
		importID := uuid.New()
		now := time.Now()
		expiry := inventory.DateOnly(now.AddDate(0, 0, 5))

		rows := sqlmock.NewRows(batchColumns()).
			AddRow(batchID, now, now, nil, ingredientID, importID, "10", "7.5", expiry, "2.5", "AVAILABLE")

		mock.ExpectQuery(`SELECT \* FROM "batches" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(batchID, 1).
			WillReturnRows(rows)

		batch, err := repo.FindByID(context.Background(), batchID)

		require.NoError(t, err)
		assert.Equal(t, batchID, batch.ID)
		assert.Equal(t, ingredientID, batch.IngredientID)
		assert.Equal(t, "7.5", batch.RemainingQuantity.String())
		assert.Equal(t, inventory.BatchStatusAvailable, batch.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing batch to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockBatchRepository(t)
		defer mockDB.Close()

		batchID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "batches" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(batchID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		batch, err := repo.FindByID(context.Background(), batchID)

		assert.Nil(t, batch)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBatchRepository_FindEligible(t *testing.T) {
	t.Run("selects for update in expiry order", func(t *testing.T) {
		repo, mock, mockDB := newMockBatchRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()
		importID := uuid.New()
		now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
		soon := inventory.DateOnly(now.AddDate(0, 0, 2))
		later := inventory.DateOnly(now.AddDate(0, 0, 9))

		rows := sqlmock.NewRows(batchColumns()).
			AddRow(uuid.New(), now, now, nil, ingredientID, importID, "10", "10", soon, "1.2", "AVAILABLE").
			AddRow(uuid.New(), now, now, nil, ingredientID, importID, "5", "5", later, "1.3", "AVAILABLE")

		mock.ExpectQuery(`SELECT \* FROM "batches" WHERE ingredient_id = \$1 .* ORDER BY expiry_date ASC, created_at ASC, id ASC FOR UPDATE`).
			WithArgs(ingredientID, "AVAILABLE", inventory.DateOnly(now)).
			WillReturnRows(rows)

		batches, err := repo.FindEligible(context.Background(), ingredientID, now)

		require.NoError(t, err)
		require.Len(t, batches, 2)
		assert.Equal(t, soon, batches[0].ExpiryDate)
		assert.Equal(t, later, batches[1].ExpiryDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when nothing is eligible", func(t *testing.T) {
		repo, mock, mockDB := newMockBatchRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "batches" WHERE ingredient_id = \$1 .* FOR UPDATE`).
			WithArgs(ingredientID, "AVAILABLE", inventory.DateOnly(now)).
			WillReturnRows(sqlmock.NewRows(batchColumns()))

		batches, err := repo.FindEligible(context.Background(), ingredientID, now)

		require.NoError(t, err)
		assert.Empty(t, batches)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBatchRepository_AvailableQuantity(t *testing.T) {
	t.Run("sums remaining quantity of eligible batches", func(t *testing.T) {
		repo, mock, mockDB := newMockBatchRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(remaining_quantity\), 0\) FROM "batches"`).
			WithArgs(ingredientID, "AVAILABLE", inventory.DateOnly(now)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("12.5"))

		total, err := repo.AvailableQuantity(context.Background(), ingredientID, now)

		require.NoError(t, err)
		assert.Equal(t, "12.5", total.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when no batches exist", func(t *testing.T) {
		repo, mock, mockDB := newMockBatchRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(remaining_quantity\), 0\) FROM "batches"`).
			WithArgs(ingredientID, "AVAILABLE", inventory.DateOnly(now)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		total, err := repo.AvailableQuantity(context.Background(), ingredientID, now)

		require.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBatchRepository_FindExpiringWithin(t *testing.T) {
	repo, mock, mockDB := newMockBatchRepository(t)
	defer mockDB.Close()

	ingredientID := uuid.New()
	importID := uuid.New()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	today := inventory.DateOnly(now)
	deadline := today.AddDate(0, 0, 7)

	rows := sqlmock.NewRows(batchColumns()).
		AddRow(uuid.New(), now, now, nil, ingredientID, importID, "4", "4", today.AddDate(0, 0, 3), "0.8", "AVAILABLE")

	mock.ExpectQuery(`SELECT \* FROM "batches" WHERE .*expiry_date > \$2 AND expiry_date <= \$3.* ORDER BY expiry_date ASC, created_at ASC, id ASC`).
		WithArgs("AVAILABLE", today, deadline).
		WillReturnRows(rows)

	batches, err := repo.FindExpiringWithin(context.Background(), now, 7)

	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, today.AddDate(0, 0, 3), batches[0].ExpiryDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package inventory

import (
	"blood-portal/entities"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockInventoryDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, InventoryRepository) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return sqlDB, mock, NewInventoryRepository(db)
}

func TestGetInventoryForUpdate_LocksRow(t *testing.T) {
	sqlDB, mock, repo := setupMockInventoryDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "inventories" WHERE blood_group = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"blood_group", "units", "updated_by"}).AddRow("A+", 10, "admin@example.com"))

	inv, err := repo.GetInventoryForUpdate(context.Background(), "A+")
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Units)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInventoryIfMissing_DoesNothingOnConflict(t *testing.T) {
	sqlDB, mock, repo := setupMockInventoryDB(t)
	defer sqlDB.Close()

	insert := `INSERT INTO "inventories" .*ON CONFLICT \("blood_group"\) DO NOTHING`
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 0))

	row := func() *entities.Inventory {
		return &entities.Inventory{BloodGroup: "O-", Units: 4, UpdatedBy: "system", UpdatedAt: time.Now()}
	}

	inserted, err := repo.CreateInventoryIfMissing(context.Background(), row())
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.CreateInventoryIfMissing(context.Background(), row())
	require.NoError(t, err)
	assert.False(t, inserted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	sqlDB, mock, repo := setupMockInventoryDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "inventories" WHERE blood_group = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"blood_group", "units"}).AddRow("B+", 3))
	mock.ExpectRollback()

	boom := errors.New("history write failed")
	err := repo.Transaction(context.Background(), func(tx InventoryRepository) error {
		if _, err := tx.GetInventoryForUpdate(context.Background(), "B+"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}

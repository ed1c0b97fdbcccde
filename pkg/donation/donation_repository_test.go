package donation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGetDonationStatistics_AggregatesPerGroup(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	repo := NewDonationRepository(db)

	mock.ExpectQuery(`SELECT blood_group, COUNT\(\*\) AS donations, COALESCE\(SUM\(units\), 0\) AS units FROM "donations" WHERE status = \$1 GROUP BY .*blood_group`).
		WithArgs("completed").
		WillReturnRows(sqlmock.NewRows([]string{"blood_group", "donations", "units"}).
			AddRow("O+", 3, 5).
			AddRow("A-", 1, 1))
	mock.ExpectQuery(`SELECT COUNT\(DISTINCT.*donor_email.*FROM "donations" WHERE status = \$1`).
		WithArgs("completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	stats, err := repo.GetDonationStatistics(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalDonations)
	assert.Equal(t, 6, stats.TotalUnits)
	assert.Equal(t, 5, stats.UnitsByGroup["O+"])
	assert.Equal(t, 1, stats.UnitsByGroup["A-"])
	assert.Equal(t, 2, stats.UniqueDonors)

	require.NoError(t, mock.ExpectationsWereMet())
}

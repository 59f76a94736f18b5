package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema(t *testing.T) {
	db, mock, cleanup := newRepairRepoMock(t)
	defer cleanup()

	repo := NewRepairRepository(db)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS repairs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateLegacyCopiesAndRetires(t *testing.T) {
	db, mock, cleanup := newRepairRepoMock(t)
	defer cleanup()

	repo := NewRepairRepository(db)
	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO repairs").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("ALTER TABLE repair_jobs RENAME").
		WillReturnResult(sqlmock.NewResult(0, 0))

	migrated, err := repo.MigrateLegacy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), migrated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateLegacyNoTwinTable(t *testing.T) {
	db, mock, cleanup := newRepairRepoMock(t)
	defer cleanup()

	repo := NewRepairRepository(db)
	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	migrated, err := repo.MigrateLegacy(context.Background())
	require.NoError(t, err)
	assert.Zero(t, migrated)
	require.NoError(t, mock.ExpectationsWereMet())
}

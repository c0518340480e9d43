package migration

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"V2__add_index.sql": {Data: []byte("CREATE INDEX idx ON t (a);\n")},
		"V1__init.sql":      {Data: []byte("CREATE TABLE t (a INT);")},
		"README.md":         {Data: []byte("ignored")},
	}
}

func TestLoad_SortsAndChecksums(t *testing.T) {
	migs, err := Load(testFS())
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "add_index", migs[1].Name)
	assert.Equal(t, "CREATE INDEX idx ON t (a);", migs[1].SQL)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{"V1__a.sql": {Data: []byte("  ")}})
	assert.ErrorContains(t, err, "empty migration file")

	_, err = Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1")},
		"V01__b.sql": {Data: []byte("SELECT 2")},
	})
	assert.ErrorIs(t, err, ErrDuplicateVersion)
}

func TestRunner_Run_AppliesPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migs, err := Load(testFS())
	require.NoError(t, err)

	mock.ExpectExec("SELECT pg_advisory_lock").WithArgs(int64(advisoryLockKey)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, checksum FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow(int64(1), migs[0].Checksum))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE INDEX idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(int64(2), "add_index", migs[1].Checksum, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectExec("SELECT pg_advisory_unlock").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Runner{FS: testFS()}.Run(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_Run_ChecksumMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("SELECT pg_advisory_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, checksum FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow(int64(1), "stale"))
	mock.ExpectExec("SELECT pg_advisory_unlock").WillReturnResult(sqlmock.NewResult(0, 0))

	err = Runner{FS: testFS()}.Run(context.Background(), db)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_Run_LocksBeforeCreatingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("SELECT pg_advisory_lock").WithArgs(int64(advisoryLockKey)).WillReturnError(errors.New("canceling statement"))

	err = Runner{FS: testFS()}.Run(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire migration lock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_Run_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Runner{FS: fstest.MapFS{}}.Run(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_Status(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	applied := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, applied_at FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "applied_at"}).AddRow(int64(1), applied))

	st, err := Runner{FS: testFS()}.Status(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, st, 2)
	require.NotNil(t, st[0].AppliedAt)
	assert.Equal(t, applied, *st[0].AppliedAt)
	assert.Equal(t, "add_index", st[1].Name)
	assert.Nil(t, st[1].AppliedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlDatabaseExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec("UPDATE users SET name = \\?").
		WithArgs("ann").
		WillReturnResult(sqlmock.NewResult(0, 3))

	sdb := NewSqlDatabase(db)
	res, err := sdb.ExecContext(context.Background(), "UPDATE users SET name = ?", "ann")
	require.NoError(t, err)

	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlDatabaseQueryScanMaps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, name FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), []byte("ann")).
			AddRow(int64(2), "bob"))

	sdb := NewSqlDatabase(db)
	rows, err := sdb.QueryContext(context.Background(), "SELECT id, name FROM users")
	require.NoError(t, err)

	got, err := ScanMaps(rows)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"id": int64(1), "name": "ann"},
		{"id": int64(2), "name": "bob"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSqlDatabasePingAndClose(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing()
	mock.ExpectClose()

	sdb := NewSqlDatabase(db)
	require.NoError(t, sdb.PingContext(context.Background()))
	require.NoError(t, sdb.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

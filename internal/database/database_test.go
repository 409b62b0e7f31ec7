package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_InvalidDriver(t *testing.T) {
	cfg := Config{
		Driver:           "nonexistent",
		ConnectionString: "whatever",
	}

	db, err := Connect(cfg)

	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestCheckHealth(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	latency, healthErr := CheckHealth(context.Background(), db)

	assert.NoError(t, healthErr)
	assert.GreaterOrEqual(t, latency, time.Duration(0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckHealth_Failure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing().WillReturnError(assert.AnError)

	_, healthErr := CheckHealth(context.Background(), db)

	assert.Error(t, healthErr)
}

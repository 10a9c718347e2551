package ledger

import (
	"testing"

	"billsplit-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Account{}))
	return db
}

func TestCreditCreatesAccount(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Credit(db, "wallet-1", 1000))

	b, err := Balance(db, "wallet-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), b)
}

func TestCreditAccumulates(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Credit(db, "wallet-1", 1000))
	require.NoError(t, Credit(db, "wallet-1", 500))

	b, err := Balance(db, "wallet-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), b)
}

func TestTransfer(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Credit(db, "wallet-1", 1000))

	require.NoError(t, Transfer(db, "wallet-1", "wallet-2", 400))

	from, err := Balance(db, "wallet-1")
	require.NoError(t, err)
	to, err := Balance(db, "wallet-2")
	require.NoError(t, err)
	assert.Equal(t, uint64(600), from)
	assert.Equal(t, uint64(400), to)
}

func TestTransferInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Credit(db, "wallet-1", 100))

	err := Transfer(db, "wallet-1", "wallet-2", 101)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	b, err := Balance(db, "wallet-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), b)
}

func TestTransferMissingSource(t *testing.T) {
	db := newTestDB(t)

	err := Transfer(db, "nobody", "wallet-2", 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestTransferZeroAmount(t *testing.T) {
	db := newTestDB(t)

	// Zero is a no-op even without any accounts.
	require.NoError(t, Transfer(db, "nobody", "wallet-2", 0))

	b, err := Balance(db, "wallet-2")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), b)
}

func TestBalanceMissingAccount(t *testing.T) {
	db := newTestDB(t)

	b, err := Balance(db, "nobody")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), b)
}

package service

import (
	"testing"

	"billsplit-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Mutating transactions read session and contract-state rows under
// SELECT ... FOR UPDATE so concurrent callers cannot both observe OPEN
// and settle or expire the same session twice.
func TestLockedReadsOnPostgres(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=billsplit dbname=billsplit",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	var state model.ContractState
	stmt := forUpdate(db).Find(&state, "id = ?", model.ContractStateID).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")

	var session model.BillSession
	stmt = forUpdate(db).Find(&session, "session_id = ?", 1).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestLockedReadsSkipSqlite(t *testing.T) {
	db := newTestDB(t).Session(&gorm.Session{DryRun: true})

	var state model.ContractState
	stmt := forUpdate(db).Find(&state, "id = ?", model.ContractStateID).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}

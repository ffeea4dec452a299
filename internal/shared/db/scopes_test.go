package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type scopeRow struct {
	ID   uint `gorm:"primarykey"`
	Name string
	Mail string
}

func newScopeDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&scopeRow{}))

	rows := []scopeRow{
		{Name: "Acme", Mail: "ops@acme.test"},
		{Name: "Globex", Mail: "it@globex.test"},
		{Name: "Initech", Mail: "acme-liaison@initech.test"},
	}
	require.NoError(t, gdb.Create(&rows).Error)
	return gdb
}

func TestSearch_MatchesAnyColumn(t *testing.T) {
	gdb := newScopeDB(t)

	var rows []scopeRow
	require.NoError(t, gdb.Scopes(Search("acme", "name", "mail"), LatestFirst()).Find(&rows).Error)

	require.Len(t, rows, 2)
	assert.Equal(t, "Initech", rows[0].Name)
	assert.Equal(t, "Acme", rows[1].Name)
}

func TestSearch_BlankTermIsNoop(t *testing.T) {
	gdb := newScopeDB(t)

	var count int64
	require.NoError(t, gdb.Model(&scopeRow{}).Scopes(Search("   ", "name")).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestPaginate(t *testing.T) {
	gdb := newScopeDB(t)

	var rows []scopeRow
	require.NoError(t, gdb.Scopes(LatestFirst(), Paginate(2, 2)).Find(&rows).Error)

	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Name)
}

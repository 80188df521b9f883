package mysql

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"petspotter/internal/logging"
	"petspotter/internal/model"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{Level: "info", Format: "json"}) })
	return &buf
}

func TestGormLoggerRoutesByLevel(t *testing.T) {
	buf := captureLogs(t)
	l := newGormLogger(logger.Warn, 200*time.Millisecond)

	l.Error(context.Background(), "deadlock found on %s", "listings")
	l.Warn(context.Background(), "slow sql")
	l.Info(context.Background(), "migrating")

	out := buf.String()
	assert.Contains(t, out, "deadlock found on listings")
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "slow sql")
	assert.Contains(t, out, `"component":"gorm"`)
	assert.NotContains(t, out, "migrating")

	buf.Reset()
	l.LogMode(logger.Silent).Error(context.Background(), "muted")
	assert.Empty(t, buf.String())
}

func TestGormLoggerTrace(t *testing.T) {
	buf := captureLogs(t)
	l := newGormLogger(logger.Warn, 200*time.Millisecond)
	fc := func() (string, int64) { return "SELECT * FROM `users` WHERE access_token = ?", 0 }

	l.Trace(context.Background(), time.Now(), fc, errors.New("bad connection"))
	out := buf.String()
	assert.Contains(t, out, "query failed")
	assert.Contains(t, out, "bad connection")
	assert.Contains(t, out, "access_token = ?")

	buf.Reset()
	l.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Contains(t, buf.String(), "slow query")

	buf.Reset()
	l.Trace(context.Background(), time.Now(), fc, nil)
	assert.Empty(t, buf.String())
}

func TestGormLoggerDropsBoundValues(t *testing.T) {
	l := newGormLogger(logger.Warn, 0)
	sql, vars := l.ParamsFilter(context.Background(), "SELECT 1 WHERE access_token = ?", "secret-token")
	assert.Equal(t, "SELECT 1 WHERE access_token = ?", sql)
	assert.Empty(t, vars)
}

func TestExactMatchColumnsUseBinaryCollation(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{DisableAutomaticPing: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	columns := []struct {
		model  interface{}
		column string
	}{
		{&model.User{}, "username"},
		{&model.User{}, "access_token"},
		{&model.Listing{}, "status"},
		{&model.Listing{}, "species"},
	}
	for _, c := range columns {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(c.model))
		field := stmt.Schema.LookUpField(c.column)
		require.NotNil(t, field, c.column)

		def := db.Migrator().FullDataTypeOf(field).SQL
		assert.Contains(t, def, "COLLATE utf8mb4_bin", c.column)
	}
}

func TestNewDoesNotRequireReachableServer(t *testing.T) {
	db, err := New("root:secret@tcp(127.0.0.1:1)/petspotter?timeout=200ms")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = Ping(db)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping mysql failed")
}

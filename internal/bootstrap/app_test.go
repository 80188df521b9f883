package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"petspotter/internal/config"
	"petspotter/internal/model"
	"petspotter/internal/repository/memory"
)

func memoryConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageMemory
	cfg.Media.Driver = config.MediaMemory
	return cfg
}

func TestNewMemoryDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Seed.ResetDB = true

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Close()) })

	assert.True(t, a.Readiness.Ready())
	assert.Nil(t, a.MySQL)
	assert.Nil(t, a.Prober)
	assert.Nil(t, a.Cache)
	assert.Nil(t, a.Publisher)
	assert.Equal(t, config.FilterDialectExact, a.ListingFilter.Dialect())

	listings, err := a.Listings.List(context.Background(), model.ListingQuery{})
	require.NoError(t, err)
	assert.Len(t, listings, 5)
}

func TestNewRejectsUnknownNames(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "sqlite"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.Listing.FilterDialect = "fuzzy"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.Media.Driver = "ftp"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewMySQLUnreachableServesNotReady(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = config.StorageMySQL
	cfg.MySQL.Host = "127.0.0.1"
	cfg.MySQL.Port = 1
	cfg.MySQL.Params = "parseTime=true&timeout=200ms"
	cfg.Readiness.ProbeIntervalSeconds = 60

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.NotNil(t, a.MySQL)
	assert.NotNil(t, a.Prober)
	assert.False(t, a.Readiness.Ready())
}

func TestStoreCheckOpensOnlyAfterPreparation(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{DisableAutomaticPing: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	check := storeCheck(db, memory.NewStore().Listings(), false)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping mysql failed")

	mock.ExpectPing()
	err = check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auto migrate tables failed")
}

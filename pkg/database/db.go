// Package database opens the application's GORM connection for the
// configured driver and tunes the underlying pool.
package database

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pedalpoint/bikeshop/config"
)

// DB is the shared connection, set by Connect.
var DB *gorm.DB

var dialectors = map[string]func(string) gorm.Dialector{
	"sqlite":    sqlite.Open,
	"postgres":  postgres.Open,
	"mysql":     mysql.Open,
	"sqlserver": sqlserver.Open,
}

// Connect opens the configured database and tunes the pool. It returns an
// error rather than exiting so callers can shut down cleanly.
func Connect() error {
	driver := config.DatabaseDriver()
	open, ok := dialectors[driver]
	if !ok {
		return fmt.Errorf("database: unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}

	db, err := gorm.Open(open(config.DatabaseDSN()), &gorm.Config{
		// SQL noise is off; request logging happens in middleware.
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(intSetting("DB_MAX_OPEN_CONNS", 25))
	sqlDB.SetMaxIdleConns(intSetting("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	DB = db
	return nil
}

// Close releases the underlying connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func intSetting(key string, fallback int) int {
	n, err := strconv.Atoi(config.Get(key, strconv.Itoa(fallback)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

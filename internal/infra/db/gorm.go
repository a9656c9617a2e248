package db

import (
	"context"
	"fmt"
	"time"

	"inventory/internal/config"
	"inventory/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// ドライバはcfg.DBDriverで切り替える（本番postgres / ローカル・テストsqlite）
func Connect(cfg config.Config, w logger.Writer) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: newLogger(cfg, w)}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, gcfg)
	case config.DriverPostgres:
		gdb, err := gorm.Open(postgres.Open(postgresDSN(cfg)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
		return gdb, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

// OpenSQLite はsqliteを開く。書き込みは直列なので接続は1本に固定
// （:memory: でも接続ごとに別DBにならない）
func OpenSQLite(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	if gcfg == nil {
		gcfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}
	gdb, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

// Migrate はテーブルを作成・更新する
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.StockMovement{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	)
}

// Close は接続プールを閉じる
func Close(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func postgresDSN(cfg config.Config) string {
	// DATABASE_URL があれば最優先で使う
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
}

func newLogger(cfg config.Config, w logger.Writer) logger.Interface {
	if w == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	level := logger.Warn
	switch cfg.LogLevel {
	case "debug":
		level = logger.Info
	case "error":
		level = logger.Error
	case "off":
		level = logger.Silent
	}
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

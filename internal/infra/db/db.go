package db

import (
	"time"

	"github.com/iris-hq/iris-os/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

func New(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	d, err := gorm.Open(postgres.Open(cfg.Database.DSN), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	}
	if cfg.Database.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return d, nil
}

// RegisterOpenTelemetryPlugin attaches the GORM tracing plugin. Called after
// the tracer provider is set up, so spans attach to the right provider.
func RegisterOpenTelemetryPlugin(d *gorm.DB) error {
	return d.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

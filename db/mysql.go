package db

import (
	"context"
	"strings"

	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

type mysqlDatabase struct {
	logger logger.Logger
	db     *gorm.DB
}

// NewMySQL opens a MySQL connection pool from cfg and verifies it with
// a ping.
func NewMySQL(log logger.Logger, cfg *Config) (Database, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var gormLevel glogger.LogLevel
	switch strings.ToLower(cfg.LogLevel) {
	case "silent":
		gormLevel = glogger.Silent
	case "error":
		gormLevel = glogger.Error
	case "info":
		gormLevel = glogger.Info
	default:
		gormLevel = glogger.Warn
	}

	d := &mysqlDatabase{logger: log}

	gdb, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger:      newQueryLogger(log, gormLevel, cfg.SlowThreshold),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, ErrConnection(err)
	}
	d.db = gdb

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, ErrConnection(err)
	}
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqldb.Ping(); err != nil {
		return nil, ErrConnection(err)
	}

	log.Info("database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return d, nil
}

func (d *mysqlDatabase) DB() (*gorm.DB, error) {
	if d.db == nil {
		return nil, ErrConnectionNotEstablished
	}
	return d.db, nil
}

func (d *mysqlDatabase) Ping(ctx context.Context) error {
	sqldb, err := d.db.DB()
	if err != nil {
		return ErrConnection(err)
	}
	return sqldb.PingContext(ctx)
}

func (d *mysqlDatabase) Close() error {
	sqldb, err := d.db.DB()
	if err != nil {
		return ErrConnection(err)
	}
	return sqldb.Close()
}

package ch

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
)

type defaultClient struct {
	config *Config
	logger logger.Logger

	conn driver.Conn

	mu     sync.RWMutex
	closed bool
}

// NewClient connects to ClickHouse and verifies the connection with a
// ping.
func NewClient(log logger.Logger, cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: cfg.Hosts,
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: cfg.DialTimeout,
		Debug:       cfg.Debug,
		Settings:    cfg.Settings,
	})
	if err != nil {
		return nil, ErrConnection(err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, ErrConnection(err)
	}

	log.Info("clickhouse client initialized",
		zap.Strings("hosts", cfg.Hosts),
		zap.String("database", cfg.Database),
	)

	return &defaultClient{
		config: cfg,
		logger: log,
		conn:   conn,
	}, nil
}

func (c *defaultClient) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrConnectionClosed
	}

	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		c.logger.Error("query failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}
	return rows, nil
}

func (c *defaultClient) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		c.logger.Error("connection is closed", zap.String("query", query))
		return nil
	}
	return c.conn.QueryRow(ctx, query, args...)
}

func (c *defaultClient) Ping(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrConnectionClosed
	}
	return c.conn.Ping(ctx)
}

func (c *defaultClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.conn.Close(); err != nil {
		c.logger.Error("failed to close clickhouse connection", zap.Error(err))
		return err
	}
	c.logger.Info("clickhouse client closed")
	return nil
}

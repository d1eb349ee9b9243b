// Package datawarehouse provides read-only connectivity to the MS SQL Server data warehouse.
// The warehouse holds the history of won quotes used as pricing benchmarks.
package datawarehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // MS SQL Server driver
	"github.com/toiture-lv/quote-api/internal/config"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	defaultHealthCheckTimeout = 5 * time.Second

	// MinBenchmarkSamples is the number of historical quotes needed before
	// a category average is trusted
	MinBenchmarkSamples = 3
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Client provides read-only access to the data warehouse.
type Client struct {
	db           *sql.DB
	logger       *zap.Logger
	queryTimeout time.Duration
	table        string
}

// HealthStatus represents the health check result for the data warehouse connection
type HealthStatus struct {
	Status     string        `json:"status"`
	Latency    time.Duration `json:"latency_ms"`
	Error      string        `json:"error,omitempty"`
	MaxOpen    int           `json:"max_open_connections"`
	Open       int           `json:"open_connections"`
	InUse      int           `json:"in_use"`
	Idle       int           `json:"idle"`
	WaitCount  int64         `json:"wait_count"`
	WaitTimeMs int64         `json:"wait_time_ms"`
}

// NewClient connects to the warehouse with retries.
// Returns nil if the data warehouse is not enabled or not configured.
func NewClient(cfg *config.DataWarehouseConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Data warehouse connection disabled")
		return nil, nil
	}

	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("Data warehouse enabled but missing credentials, skipping connection",
			zap.Bool("url_present", cfg.URL != ""),
			zap.Bool("user_present", cfg.User != ""),
			zap.Bool("password_present", cfg.Password != ""),
		)
		return nil, nil
	}

	if !tableNamePattern.MatchString(cfg.BenchmarkTable) {
		return nil, fmt.Errorf("invalid benchmark table name %q", cfg.BenchmarkTable)
	}

	connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	var db *sql.DB
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		db, err = sql.Open("sqlserver", connStr)
		if err == nil {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
			db.SetMaxIdleConns(cfg.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

			ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
			err = db.PingContext(ctx)
			cancel()
			if err == nil {
				logger.Info("Data warehouse connection established",
					zap.Int("attempts_taken", attempt),
					zap.String("benchmark_table", cfg.BenchmarkTable),
				)
				return NewClientWithDB(db, cfg, logger)
			}
			_ = db.Close()
		}

		logger.Warn("Data warehouse connection attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxRetries),
		)
		if attempt < defaultMaxRetries {
			time.Sleep(backoff)
			backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
		}
	}

	return nil, fmt.Errorf("failed to connect to data warehouse after %d attempts: %w", defaultMaxRetries, err)
}

// NewClientWithDB wraps an already opened connection
func NewClientWithDB(db *sql.DB, cfg *config.DataWarehouseConfig, logger *zap.Logger) (*Client, error) {
	if !tableNamePattern.MatchString(cfg.BenchmarkTable) {
		return nil, fmt.Errorf("invalid benchmark table name %q", cfg.BenchmarkTable)
	}
	timeout := cfg.QueryTimeoutDuration()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		db:           db,
		logger:       logger,
		queryTimeout: timeout,
		table:        cfg.BenchmarkTable,
	}, nil
}

// buildConnectionString constructs a SQL Server connection string from the config.
// URL format expected: host:port/database or host:port (uses default database)
func buildConnectionString(cfg *config.DataWarehouseConfig) (string, error) {
	hostPort, database, _ := strings.Cut(cfg.URL, "/")
	host, port, found := strings.Cut(hostPort, ":")
	if host == "" {
		return "", fmt.Errorf("missing host in %q", cfg.URL)
	}
	if !found || port == "" {
		port = "1433"
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	query.Add("ApplicationIntent", "ReadOnly")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}

	return u.String(), nil
}

// Close gracefully closes the data warehouse connection.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close data warehouse connection", zap.Error(err))
		return fmt.Errorf("failed to close data warehouse connection: %w", err)
	}

	c.logger.Info("Data warehouse connection closed")
	return nil
}

// HealthCheck pings the warehouse and reports pool statistics.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if c == nil || c.db == nil {
		return &HealthStatus{
			Status: "disabled",
		}
	}

	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	stats := c.db.Stats()
	status := &HealthStatus{
		Latency:    latency,
		MaxOpen:    stats.MaxOpenConnections,
		Open:       stats.OpenConnections,
		InUse:      stats.InUse,
		Idle:       stats.Idle,
		WaitCount:  stats.WaitCount,
		WaitTimeMs: stats.WaitDuration.Milliseconds(),
	}

	if err != nil {
		c.logger.Warn("Data warehouse health check failed",
			zap.Error(err),
			zap.Duration("latency", latency),
		)
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}

	return status
}

// PricePerSqftBenchmark returns the average price per sqft of won quotes in
// the category, or nil when the history has fewer than MinBenchmarkSamples rows.
func (c *Client) PricePerSqftBenchmark(ctx context.Context, category string) (*float64, error) {
	if !c.IsEnabled() {
		return nil, nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	query := fmt.Sprintf(`SELECT AVG(total_price / sqft), COUNT(*)
		FROM %s
		WHERE category = @category AND sqft > 0 AND total_price > 0`, c.table)

	start := time.Now()
	var avg sql.NullFloat64
	var samples int64
	err := c.db.QueryRowContext(ctx, query, sql.Named("category", category)).Scan(&avg, &samples)
	if err != nil {
		c.logger.Error("Data warehouse benchmark query failed",
			zap.Error(err),
			zap.String("category", category),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("benchmark query failed: %w", err)
	}

	c.logger.Debug("Data warehouse benchmark query completed",
		zap.String("category", category),
		zap.Int64("samples", samples),
		zap.Duration("duration", time.Since(start)),
	)

	if !avg.Valid || samples < MinBenchmarkSamples {
		return nil, nil
	}
	v := avg.Float64
	return &v, nil
}

// IsEnabled returns true if the client is initialized and ready for queries.
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

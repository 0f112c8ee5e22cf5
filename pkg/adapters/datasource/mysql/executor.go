// Package mysql implements the datasource capabilities over a MySQL server.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/adapters/datasource"
	"github.com/askdata-labs/askdata-engine/pkg/config"
	"github.com/askdata-labs/askdata-engine/pkg/logging"
	"github.com/askdata-labs/askdata-engine/pkg/models"
)

// Executor runs statements against a MySQL database and decodes result sets
// into column-keyed row maps.
type Executor struct {
	db     *sql.DB
	logger *zap.Logger
}

var (
	_ datasource.SQLExecutor      = (*Executor)(nil)
	_ datasource.ConnectionTester = (*Executor)(nil)
)

// New opens a connection pool from config and verifies it with a ping.
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*Executor, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql %s: %w", logging.SanitizeDSN(dsn), err)
	}

	logger.Info("mysql connection established",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database))

	return &Executor{db: db, logger: logger.Named("mysql")}, nil
}

// Execute runs one statement and decodes every row into a map keyed by
// column name. Byte slices are converted to strings so JSON encoding stays
// readable.
func (e *Executor) Execute(ctx context.Context, query string) (*models.QueryResult, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}

	result := &models.QueryResult{Columns: columns, Rows: []map[string]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result rows: %w", err)
	}

	e.logger.Debug("query executed",
		zap.String("query", logging.SanitizeQuery(query)),
		zap.Int("rows", len(result.Rows)))

	return result, nil
}

// Ping implements datasource.ConnectionTester.
func (e *Executor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

// Close implements datasource.ConnectionTester.
func (e *Executor) Close() error {
	return e.db.Close()
}

// Package datasource defines the external query-executor capability used by
// SQL generation when execution is enabled.
package datasource

import (
	"context"

	"github.com/askdata-labs/askdata-engine/pkg/models"
)

// SQLExecutor runs one SQL statement against an external database and
// decodes the result set.
type SQLExecutor interface {
	Execute(ctx context.Context, sql string) (*models.QueryResult, error)
}

// ConnectionTester reports liveness of the underlying connection.
type ConnectionTester interface {
	Ping(ctx context.Context) error
	Close() error
}

// IsConnected reports whether the executor has a live connection. A nil
// tester is treated as not connected.
func IsConnected(ctx context.Context, t ConnectionTester) bool {
	if t == nil {
		return false
	}
	return t.Ping(ctx) == nil
}

package datasource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTester struct {
	pingErr error
}

func (s *stubTester) Ping(context.Context) error { return s.pingErr }
func (s *stubTester) Close() error               { return nil }

func TestIsConnected(t *testing.T) {
	ctx := context.Background()

	assert.False(t, IsConnected(ctx, nil))
	assert.False(t, IsConnected(ctx, &stubTester{pingErr: errors.New("connection refused")}))
	assert.True(t, IsConnected(ctx, &stubTester{}))
}

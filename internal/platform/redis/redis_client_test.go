package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	// ポート1は通常待ち受けがないため即座に接続拒否される
	rdb, err := NewRedisClient(context.Background(), "127.0.0.1:1", "")

	assert.Error(t, err)
	assert.Nil(t, rdb)
}

package redis

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"

	"fbp/billing/internal/app/pkg/logger"
)

func TestCloseIsIdempotent(t *testing.T) {
	s := &InvalidationSubscriber{
		rdb:     redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}),
		channel: "billing:config-changed",
		closing: atomic.NewBool(false),
		log:     logger.NopLogger{},
	}

	assert.NoError(t, s.Close())
	// 启动失败路径和停机 cleanup 可能先后调用，第二次直接返回
	assert.NoError(t, s.Close())
}

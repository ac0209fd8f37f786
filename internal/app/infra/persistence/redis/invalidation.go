package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"

	"fbp/billing/internal/app/pkg/logger"
)

// InvalidationSubscriber 配置失效订阅器
// 后台管理工具修改别名或费率后向约定频道发布一条消息，
// 计费服务收到后丢弃内存快照，下次访问重新加载。
// 消息内容不参与判定，任何消息都触发全量失效。
type InvalidationSubscriber struct {
	rdb     *redis.Client
	channel string
	closing *atomic.Bool
	log     logger.Logger
}

// NewInvalidationSubscriber 创建配置失效订阅器，支持密码认证
func NewInvalidationSubscriber(addr, password string, db int, channel string, log logger.Logger) (*InvalidationSubscriber, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &InvalidationSubscriber{
		rdb:     rdb,
		channel: channel,
		closing: atomic.NewBool(false),
		log:     log,
	}, nil
}

// Run 订阅失效频道并循环处理，Context 取消后返回
// 每收到一条消息调用一次 onInvalidate。
func (s *InvalidationSubscriber) Run(ctx context.Context, onInvalidate func()) error {
	sub := s.rdb.Subscribe(ctx, s.channel)
	defer sub.Close()

	// 确认订阅建立
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	s.log.Infof(ctx, "config invalidation subscriber started: channel=%s", s.channel)

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.log.Infof(ctx, "config changed, invalidating snapshots: payload=%s", msg.Payload)
			onInvalidate()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Publish 向失效频道发布消息（管理工具侧使用）
func (s *InvalidationSubscriber) Publish(ctx context.Context, message string) error {
	return s.rdb.Publish(ctx, s.channel, message).Err()
}

// Close 关闭连接，可重复调用
// 启动失败路径和停机 cleanup 都会调用，仅首次生效。
func (s *InvalidationSubscriber) Close() error {
	if !s.closing.CAS(false, true) {
		return nil
	}
	return s.rdb.Close()
}

package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// PubSubClient Redis Pub/Sub 客户端封装
// 用于凭证刷新分发：被阻塞的同步流程订阅频道，外部通过发布解除阻塞
type PubSubClient struct {
	rdb *redis.Client
}

// NewPubSubClient 创建 Pub/Sub 客户端，支持密码认证
func NewPubSubClient(addr, password string, db int) (*PubSubClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &PubSubClient{rdb: rdb}, nil
}

// Receive 订阅指定 channel 并阻塞等待一条消息
// 没有超时：等待时长由外部输入决定，取消只能通过 ctx
func (c *PubSubClient) Receive(ctx context.Context, channel string) (string, error) {
	sub := c.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	select {
	case msg := <-sub.Channel():
		return msg.Payload, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Publish 向指定 channel 发布消息
func (c *PubSubClient) Publish(ctx context.Context, channel string, message string) error {
	return c.rdb.Publish(ctx, channel, message).Err()
}

// Close 关闭连接
func (c *PubSubClient) Close() error {
	return c.rdb.Close()
}

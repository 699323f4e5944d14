package mdcredential

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etcred"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/persistence/redis"
)

// 凭证刷新频道：外部补发签名对时向此频道发布
const refreshChannel = "credentials:refresh"

// refreshPayload 频道消息格式
type refreshPayload struct {
	Authorization string `json:"authorization,omitempty"`
	Sign          string `json:"x_request_sign"`
	SignTimestamp string `json:"x_request_timestamp"`
}

// CredentialModule 基于 Redis Pub/Sub 的凭证分发
// 与诊断结果等待同款机制：订阅方阻塞在频道上，发布即送达
type CredentialModule struct {
	pubsub *redis.PubSubClient
}

// NewCredentialModule 创建凭证模块实例
func NewCredentialModule(pubsub *redis.PubSubClient) *CredentialModule {
	return &CredentialModule{pubsub: pubsub}
}

// Await 阻塞等待外部发布新凭证
func (m *CredentialModule) Await(ctx context.Context) (etcred.Credentials, error) {
	payload, err := m.pubsub.Receive(ctx, refreshChannel)
	if err != nil {
		return etcred.Credentials{}, fmt.Errorf("wait for credentials failed: %w", err)
	}

	var p refreshPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return etcred.Credentials{}, fmt.Errorf("decode credentials payload failed: %w", err)
	}

	return etcred.Credentials{
		Authorization: p.Authorization,
		Sign:          p.Sign,
		SignTimestamp: p.SignTimestamp,
	}, nil
}

// Publish 发布新凭证，解除正在等待的同步流程
func (m *CredentialModule) Publish(ctx context.Context, creds etcred.Credentials) error {
	payload, err := json.Marshal(refreshPayload{
		Authorization: creds.Authorization,
		Sign:          creds.Sign,
		SignTimestamp: creds.SignTimestamp,
	})
	if err != nil {
		return err
	}
	return m.pubsub.Publish(ctx, refreshChannel, string(payload))
}

package mddetail

import (
	"context"

	"github.com/google/uuid"

	"github.com/xixiwenxuanhe/order-management/internal/app/infra/mq/lmstfy"
)

// DetailJob 详情补抓任务消息
// 消费端（独立进程）抓取完整详情、替换商品行并把登记项置为完成
type DetailJob struct {
	RequestID  string `json:"request_id"`
	ActionType string `json:"action_type"`
	OrderID    string `json:"order_id"`
}

// DetailModule 详情补抓任务分发模块
type DetailModule struct {
	client *lmstfy.Client
	queue  string
}

// NewDetailModule 创建详情模块实例
func NewDetailModule(client *lmstfy.Client, queue string) *DetailModule {
	return &DetailModule{client: client, queue: queue}
}

// PublishDetailJob 发布订单的详情补抓任务
func (m *DetailModule) PublishDetailJob(_ context.Context, orderID string) error {
	job := DetailJob{
		RequestID:  uuid.New().String(),
		ActionType: "order_detail",
		OrderID:    orderID,
	}
	return m.client.Publish(m.queue, job)
}

package lmstfy

import (
	"encoding/json"
	"fmt"

	"github.com/bitleak/lmstfy/client"
)

// 任务发布参数：存活一小时，不延迟，最多投递 3 次
const (
	jobTTL   = 3600
	jobDelay = 0
	jobTries = 3
)

// Client Lmstfy 客户端封装
// 本服务只发布详情补抓任务，消费端是独立的扩展进程
type Client struct {
	cli *client.LmstfyClient
}

// NewClient 创建 Lmstfy 客户端
func NewClient(host string, port int, namespace, token string) *Client {
	return &Client{
		cli: client.NewLmstfyClient(host, port, namespace, token),
	}
}

// Publish 发布消息到队列，消息体为 JSON
func (c *Client) Publish(queue string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := c.cli.Publish(queue, payload, jobTTL, jobTries, jobDelay); err != nil {
		return fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return nil
}

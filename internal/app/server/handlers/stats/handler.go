package stats

import (
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/repo/rporder"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
)

// StatsHandler 统计查询 HTTP 处理器
type StatsHandler struct {
	store rporder.OrderStore
	log   logger.Logger
}

// NewStatsHandler 创建统计处理器实例
func NewStatsHandler(store rporder.OrderStore, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		store: store,
		log:   log,
	}
}

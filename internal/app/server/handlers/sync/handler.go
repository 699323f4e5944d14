package sync

import (
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/services/svsync"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
)

// SyncHandler 同步 HTTP 处理器
type SyncHandler struct {
	syncService *svsync.SyncService
	log         logger.Logger
}

// NewSyncHandler 创建同步处理器实例
func NewSyncHandler(syncService *svsync.SyncService, log logger.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		log:         log,
	}
}

package sync

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/apimodel/request"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/apimodel/response"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/services/svsync"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/ginx"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
)

// FetchIncremental 增量单页同步接口
// 只有订单号大于 target_order_id 的新订单会落库；
// found_boundary 为 true 表示已抓到存量数据，无需再翻页
// POST /api/v1/sync/fetch-incremental
func (h *SyncHandler) FetchIncremental(c *gin.Context) {
	var req request.SyncFetchIncrementalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ctx := logger.WithRunID(c.Request.Context(), uuid.New().String())
	report, err := h.syncService.RunPage(ctx, svsync.PageOptions{
		Credentials:   req.ToCredentials(),
		Limit:         req.Limit,
		LastID:        req.LastID,
		TargetOrderID: req.TargetOrderID,
	})
	if err != nil {
		h.log.Errorf(ctx, "增量同步失败 target=%s: %v", req.TargetOrderID, err)
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromPageReport(report))
}

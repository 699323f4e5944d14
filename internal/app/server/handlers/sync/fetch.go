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

// Fetch 单页同步接口：抓取一页并完整落库
// 调用方用返回的 last_id 继续翻页，has_more 为 false 表示已到末页
// POST /api/v1/sync/fetch
func (h *SyncHandler) Fetch(c *gin.Context) {
	var req request.SyncFetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ctx := logger.WithRunID(c.Request.Context(), uuid.New().String())
	report, err := h.syncService.RunPage(ctx, svsync.PageOptions{
		Credentials: req.ToCredentials(),
		Limit:       req.Limit,
		LastID:      req.LastID,
	})
	if err != nil {
		h.log.Errorf(ctx, "单页同步失败: %v", err)
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromPageReport(report))
}

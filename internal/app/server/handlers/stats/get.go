package stats

import (
	"github.com/gin-gonic/gin"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/apimodel/response"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/ginx"
)

// Get 存储聚合统计接口
// incomplete_earliest_order_id 即下一次增量同步的目标边界
// GET /api/v1/stats
func (h *StatsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.store.Stats(ctx)
	if err != nil {
		h.log.Errorf(ctx, "统计查询失败: %v", err)
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromAggregateStats(stats))
}

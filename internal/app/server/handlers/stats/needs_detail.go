package stats

import (
	"github.com/gin-gonic/gin"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/apimodel/response"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/ginx"
)

// NeedsDetail 待补详情登记列表接口，默认只返回未完成的登记
// GET /api/v1/needs-detail?include_complete=1
func (h *StatsHandler) NeedsDetail(c *gin.Context) {
	flag := c.Query("include_complete")
	includeComplete := flag == "1" || flag == "true"

	ctx := c.Request.Context()
	markers, err := h.store.ListNeedsDetail(ctx, includeComplete)
	if err != nil {
		h.log.Errorf(ctx, "待补详情列表查询失败: %v", err)
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, response.FromNeedsDetailMarkers(markers))
}

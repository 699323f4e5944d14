package sync

import (
	"github.com/gin-gonic/gin"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/apimodel/request"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/apimodel/response"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/ginx"
)

// OrderDetail 单订单详情补抓接口：抓取完整详情并替换本地商品行
// POST /api/v1/sync/order-detail
func (h *SyncHandler) OrderDetail(c *gin.Context) {
	var req request.OrderDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ctx := c.Request.Context()
	order, saved, err := h.syncService.RefreshDetail(ctx, req.ToCredentials(), req.OrderID)
	if err != nil {
		h.log.Errorf(ctx, "详情补抓失败 orderID=%s: %v", req.OrderID, err)
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, &response.OrderDetailResponse{
		OrderID:        order.OrderID,
		Status:         order.Status.Name,
		LineItemsSaved: saved,
		DetailComplete: h.syncService.DetailComplete(order),
	})
}

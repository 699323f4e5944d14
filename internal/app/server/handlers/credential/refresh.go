package credential

import (
	"github.com/gin-gonic/gin"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/apimodel/request"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/ginx"
)

// Refresh 凭证刷新接口：把新签名广播给因签名失效而挂起的同步轮次
// POST /api/v1/credentials
func (h *CredentialHandler) Refresh(c *gin.Context) {
	var req request.RefreshCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.credModule.Publish(ctx, req.ToCredentials()); err != nil {
		h.log.Errorf(ctx, "凭证广播失败: %v", err)
		ginx.FromError(c, err)
		return
	}

	ginx.Success(c, gin.H{"published": true})
}

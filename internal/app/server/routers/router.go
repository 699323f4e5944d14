package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
	"github.com/xixiwenxuanhe/order-management/internal/app/server/handlers/credential"
	"github.com/xixiwenxuanhe/order-management/internal/app/server/handlers/stats"
	"github.com/xixiwenxuanhe/order-management/internal/app/server/handlers/sync"
	"github.com/xixiwenxuanhe/order-management/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
// credentialHandler 为 nil 时不注册凭证刷新接口（未配置 Redis）
func SetupRoutes(
	syncHandler *sync.SyncHandler,
	statsHandler *stats.StatsHandler,
	credentialHandler *credential.CredentialHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "order-management",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		syncGroup := v1.Group("/sync")
		{
			syncGroup.POST("/fetch", syncHandler.Fetch)
			syncGroup.POST("/fetch-incremental", syncHandler.FetchIncremental)
			syncGroup.POST("/order-detail", syncHandler.OrderDetail)
		}

		v1.GET("/stats", statsHandler.Get)
		v1.GET("/needs-detail", statsHandler.NeedsDetail)

		if credentialHandler != nil {
			v1.POST("/credentials", credentialHandler.Refresh)
		}
	}

	return r
}

package main

import (
	"github.com/gin-gonic/gin"

	"github.com/xixiwenxuanhe/order-management/internal/app/config"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/modules/mdcredential"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/modules/mddetail"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/repo/rporder"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/services/svsync"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/mq/lmstfy"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/persistence"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/persistence/redis"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/qiandao"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
	"github.com/xixiwenxuanhe/order-management/internal/app/server/handlers/credential"
	"github.com/xixiwenxuanhe/order-management/internal/app/server/handlers/stats"
	"github.com/xixiwenxuanhe/order-management/internal/app/server/handlers/sync"
	"github.com/xixiwenxuanhe/order-management/internal/app/server/routers"
)

// App 应用实例
type App struct {
	Engine *gin.Engine
	Log    logger.Logger
}

// InitializeApp 按依赖顺序装配应用
// Redis 与 Lmstfy 均为可选：未配置时同步服务退化运行
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	log, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	db, err := persistence.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	statuses := cfg.StatusTable()
	store := rporder.NewOrderStore(db, statuses)
	fetcher := qiandao.NewClient(cfg.Vendor, log)

	var credModule *mdcredential.CredentialModule
	var pubsub *redis.PubSubClient
	if cfg.Redis.Addr != "" {
		pubsub, err = redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = persistence.Close(db)
			return nil, nil, err
		}
		credModule = mdcredential.NewCredentialModule(pubsub)
	}

	var detailModule *mddetail.DetailModule
	if cfg.Lmstfy.Host != "" {
		mqClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
		detailModule = mddetail.NewDetailModule(mqClient, cfg.Lmstfy.DetailQueue)
	}

	// 接口值持有 nil 指针时不等于 nil，按配置显式装配
	var awaiter svsync.CredentialAwaiter
	if credModule != nil {
		awaiter = credModule
	}
	var publisher svsync.DetailPublisher
	if detailModule != nil {
		publisher = detailModule
	}
	syncService := svsync.NewSyncService(fetcher, store, awaiter, publisher, statuses, log)

	syncHandler := sync.NewSyncHandler(syncService, log)
	statsHandler := stats.NewStatsHandler(store, log)
	var credentialHandler *credential.CredentialHandler
	if credModule != nil {
		credentialHandler = credential.NewCredentialHandler(credModule, log)
	}

	engine := routers.SetupRoutes(syncHandler, statsHandler, credentialHandler, log)

	cleanup := func() {
		if pubsub != nil {
			_ = pubsub.Close()
		}
		_ = persistence.Close(db)
		_ = log.Sync()
	}
	return &App{Engine: engine, Log: log}, cleanup, nil
}

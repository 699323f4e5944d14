package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xixiwenxuanhe/order-management/internal/app/config"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etcred"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/modules/mdcredential"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/modules/mddetail"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/repo/rporder"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/services/svsync"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/mq/lmstfy"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/persistence"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/persistence/redis"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/qiandao"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	mode := flag.String("mode", "incr", "同步模式：full 全量 / incr 增量")
	limit := flag.Int("limit", 0, "页大小，0 取配置默认值")
	target := flag.String("target", "", "增量边界订单号，空时取库内统计推导")
	lastID := flag.String("last-id", "", "断点续跑的起始游标")
	maxPages := flag.Int("max-pages", 0, "本轮最多抓取页数，0 不限")
	waitRedis := flag.Bool("wait-redis", false, "签名失效时通过 Redis 等待新凭证")
	flag.Parse()

	if *mode != "full" && *mode != "incr" {
		log.Fatalf("无效的同步模式 %q，应为 full 或 incr", *mode)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置校验失败: %v", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := persistence.Open(cfg.Database)
	if err != nil {
		log.Fatalf("打开数据库失败: %v", err)
	}
	defer func() { _ = persistence.Close(db) }()

	statuses := cfg.StatusTable()
	store := rporder.NewOrderStore(db, statuses)
	fetcher := qiandao.NewClient(cfg.Vendor, zlog)

	// 默认签名失效时走终端重新录入，-wait-redis 改为等待外部广播
	var awaiter svsync.CredentialAwaiter = &stdinAwaiter{reader: bufio.NewReader(os.Stdin)}
	if *waitRedis && cfg.Redis.Addr != "" {
		pubsub, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("连接 Redis 失败: %v", err)
		}
		defer func() { _ = pubsub.Close() }()
		awaiter = mdcredential.NewCredentialModule(pubsub)
	}

	var publisher svsync.DetailPublisher
	if cfg.Lmstfy.Host != "" {
		mqClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
		publisher = mddetail.NewDetailModule(mqClient, cfg.Lmstfy.DetailQueue)
	}

	syncService := svsync.NewSyncService(fetcher, store, awaiter, publisher, statuses, zlog)

	ctx := context.Background()
	creds := promptCredentials()
	if err := creds.Validate(); err != nil {
		log.Fatalf("凭证不完整: %v", err)
	}

	opts := svsync.RunOptions{
		Credentials: creds,
		Limit:       *limit,
		StartLastID: *lastID,
		MaxPages:    *maxPages,
	}
	if *mode == "incr" {
		opts.TargetOrderID = *target
		if opts.TargetOrderID == "" {
			opts.TargetOrderID, err = deriveTarget(ctx, store)
			if err != nil {
				log.Fatalf("推导增量边界失败: %v", err)
			}
		}
		if opts.TargetOrderID == "" {
			log.Println("库内无历史订单，转为全量同步")
		} else {
			log.Printf("增量边界订单号: %s", opts.TargetOrderID)
		}
	}

	report, err := syncService.Run(ctx, opts)
	if report != nil {
		printReport(report)
	}
	if err != nil {
		log.Fatalf("同步中止: %v", err)
	}
}

// stdinAwaiter 签名失效时在终端重新录入签名对
// authorization 留空沿用旧令牌
type stdinAwaiter struct {
	reader *bufio.Reader
}

func (a *stdinAwaiter) Await(_ context.Context) (etcred.Credentials, error) {
	fmt.Println("签名已失效，请补发新签名")
	return etcred.Credentials{
		Sign:          promptLine(a.reader, "x-request-sign"),
		SignTimestamp: promptLine(a.reader, "x-request-timestamp"),
	}, nil
}

// promptCredentials 交互式读取上游凭证
func promptCredentials() etcred.Credentials {
	reader := bufio.NewReader(os.Stdin)
	return etcred.Credentials{
		Authorization: promptLine(reader, "authorization"),
		Sign:          promptLine(reader, "x-request-sign"),
		SignTimestamp: promptLine(reader, "x-request-timestamp"),
	}
}

func promptLine(reader *bufio.Reader, name string) string {
	fmt.Printf("请输入 %s: ", name)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// deriveTarget 从库内统计推导增量边界
// 优先取最早的未完结订单（让其状态得到刷新），否则取最新订单
func deriveTarget(ctx context.Context, store rporder.OrderStore) (string, error) {
	stats, err := store.Stats(ctx)
	if err != nil {
		return "", err
	}
	if stats.IncompleteEarliestOrderID != "" {
		return stats.IncompleteEarliestOrderID, nil
	}
	return stats.LatestOrderID, nil
}

// printReport 打印同步结果
func printReport(report *svsync.RunReport) {
	fmt.Println("---- 同步结果 ----")
	fmt.Printf("抓取页数:      %d\n", report.Pages)
	fmt.Printf("上游记录数:    %d\n", report.OrdersSeen)
	fmt.Printf("落库订单数:    %d\n", report.OrdersSaved)
	fmt.Printf("写入商品行:    %d\n", report.LineItemsSaved)
	fmt.Printf("待补详情订单:  %d\n", report.NeedsDetailCount)
	fmt.Printf("凭证刷新次数:  %d\n", report.CredentialWaits)
	fmt.Printf("末页游标:      %s\n", report.LastID)
	fmt.Printf("命中增量边界:  %v\n", report.FoundBoundary)
}

package svsync

import (
	"context"

	"go.uber.org/atomic"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etcred"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/repo/rporder"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/qiandao"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/errorx"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
)

// defaultPageLimit 未指定页大小时的默认值，与上游推荐一致
const defaultPageLimit = 30

// Fetcher 上游订单抓取端口
type Fetcher interface {
	FetchPage(ctx context.Context, creds etcred.Credentials, limit int, lastID string) (*qiandao.Page, error)
	FetchOrderDetail(ctx context.Context, creds etcred.Credentials, orderID string) (*qiandao.RawRow, error)
}

// CredentialAwaiter 凭证刷新端口：阻塞等待外部补发新凭证
type CredentialAwaiter interface {
	Await(ctx context.Context) (etcred.Credentials, error)
}

// DetailPublisher 待补详情任务分发端口
type DetailPublisher interface {
	PublishDetailJob(ctx context.Context, orderID string) error
}

// SyncService 同步控制器：逐页抓取、规范化、分类并落库
// creds 与 detail 允许为 nil，分别退化为签名失效即中止、不分发补抓任务
type SyncService struct {
	fetcher  Fetcher
	store    rporder.OrderStore
	creds    CredentialAwaiter
	detail   DetailPublisher
	statuses *etorder.StatusTable
	running  *atomic.Bool
	log      logger.Logger
}

// NewSyncService 创建同步服务实例
func NewSyncService(fetcher Fetcher, store rporder.OrderStore, creds CredentialAwaiter,
	detail DetailPublisher, statuses *etorder.StatusTable, log logger.Logger) *SyncService {
	return &SyncService{
		fetcher:  fetcher,
		store:    store,
		creds:    creds,
		detail:   detail,
		statuses: statuses,
		running:  atomic.NewBool(false),
		log:      log,
	}
}

// PageOptions 单页同步参数
type PageOptions struct {
	Credentials   etcred.Credentials
	Limit         int    // <=0 时取默认页大小
	LastID        string // 上一页游标，空串表示第一页
	TargetOrderID string // 增量边界订单号，空串表示全量
}

// PageReport 单页同步结果
type PageReport struct {
	OrdersSeen       int    `json:"orders_seen"`        // 本页上游返回的记录数
	OrdersSaved      int    `json:"orders_saved"`       // 完整落库的订单数
	LineItemsSaved   int    `json:"line_items_saved"`   // 写入的商品行数
	NeedsDetailCount int    `json:"needs_detail_count"` // 本页登记待补详情的订单数
	LastID           string `json:"last_id"`            // 下一页游标
	HasMore          bool   `json:"has_more"`           // 按满页判定是否还有后续页
	FoundBoundary    bool   `json:"found_boundary"`     // 是否命中增量边界
}

// RunOptions 整轮同步参数
type RunOptions struct {
	Credentials   etcred.Credentials
	Limit         int
	TargetOrderID string // 空串表示全量同步
	Scope         string // 检查点作用域，空串时按是否有边界自动取值
	StartLastID   string // 断点续跑的起始游标
	MaxPages      int    // >0 时限制本轮最多抓取页数
}

// RunReport 整轮同步结果
type RunReport struct {
	Pages            int    `json:"pages"`
	OrdersSeen       int    `json:"orders_seen"`
	OrdersSaved      int    `json:"orders_saved"`
	LineItemsSaved   int    `json:"line_items_saved"`
	NeedsDetailCount int    `json:"needs_detail_count"`
	CredentialWaits  int    `json:"credential_waits"` // 签名失效后等待刷新的次数
	LastID           string `json:"last_id"`
	FoundBoundary    bool   `json:"found_boundary"`
}

// RunPage 同步单页：抓取、规范化、边界过滤、分类、落库
// 与整轮同步互斥，持有同一把单跑锁；调用方用返回的 LastID 链式翻页
func (s *SyncService) RunPage(ctx context.Context, opts PageOptions) (*PageReport, error) {
	if !s.running.CAS(false, true) {
		return nil, errorx.ErrRunInProgress
	}
	defer s.running.Store(false)

	if err := opts.Credentials.Validate(); err != nil {
		return nil, err
	}
	return s.runPage(ctx, opts)
}

// runPage 单页同步主体，调用方负责互斥
// 增量边界处命中的旧订单整页内直接跳过，不会写库
func (s *SyncService) runPage(ctx context.Context, opts PageOptions) (*PageReport, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if opts.TargetOrderID != "" {
		if _, err := etorder.CompareOrderID(opts.TargetOrderID, "0"); err != nil {
			return nil, err
		}
	}

	page, err := s.fetcher.FetchPage(ctx, opts.Credentials, limit, opts.LastID)
	if err != nil {
		return nil, err
	}

	report := &PageReport{
		OrdersSeen: page.Count,
		LastID:     page.LastID,
		HasMore:    page.Count >= limit,
	}

	var complete []*etorder.Order
	var needsDetail []string
	for i := range page.Rows {
		order := NormalizeOrder(&page.Rows[i])
		if order.OrderID == "" {
			continue
		}
		if opts.TargetOrderID != "" {
			cmp, err := etorder.CompareOrderID(order.OrderID, opts.TargetOrderID)
			if err != nil {
				return nil, err
			}
			if cmp <= 0 {
				// 已进入边界以内的旧订单，本页剩余记录同样在边界内
				report.FoundBoundary = true
				continue
			}
		}
		if Classify(order) == DispositionNeedsDetail {
			needsDetail = append(needsDetail, order.OrderID)
			continue
		}
		complete = append(complete, order)
	}

	saved, err := s.store.SavePage(ctx, complete, needsDetail)
	if err != nil {
		return nil, err
	}
	report.OrdersSaved = len(complete)
	report.LineItemsSaved = saved
	report.NeedsDetailCount = len(needsDetail)

	s.publishDetailJobs(ctx, needsDetail)
	return report, nil
}

// publishDetailJobs 尽力分发补抓任务，失败只告警不影响本页结果
func (s *SyncService) publishDetailJobs(ctx context.Context, orderIDs []string) {
	if s.detail == nil {
		return
	}
	for _, id := range orderIDs {
		if err := s.detail.PublishDetailJob(ctx, id); err != nil {
			s.log.Warnf(ctx, "补抓任务分发失败 orderID=%s err=%v", id, err)
		}
	}
}

// Run 整轮同步：从起始游标逐页推进直到命中边界、短页或空页
// 同一时刻只允许一轮在跑；签名失效且配置了凭证端口时，挂起等待
// 新凭证后用同一游标重试当前页，游标不会丢失
func (s *SyncService) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	if !s.running.CAS(false, true) {
		return nil, errorx.ErrRunInProgress
	}
	defer s.running.Store(false)

	creds := opts.Credentials
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if opts.TargetOrderID != "" {
		if _, err := etorder.CompareOrderID(opts.TargetOrderID, "0"); err != nil {
			return nil, err
		}
	}

	scope := opts.Scope
	if scope == "" {
		scope = scopeForTarget(opts.TargetOrderID)
	}

	cursor := opts.StartLastID
	report := &RunReport{LastID: cursor}
	pageNo := 1
	for {
		if opts.MaxPages > 0 && pageNo > opts.MaxPages {
			break
		}
		pageCtx := logger.WithPage(ctx, pageNo)

		pr, err := s.runPage(pageCtx, PageOptions{
			Credentials:   creds,
			Limit:         opts.Limit,
			LastID:        cursor,
			TargetOrderID: opts.TargetOrderID,
		})
		if err != nil {
			if errorx.KindOf(err) == errorx.KindSignatureExpired && s.creds != nil {
				s.log.Warnf(pageCtx, "签名失效，挂起等待外部刷新凭证")
				fresh, waitErr := s.creds.Await(ctx)
				if waitErr != nil {
					s.checkpoint(ctx, scope, cursor, report)
					return report, waitErr
				}
				creds = creds.Merge(fresh)
				report.CredentialWaits++
				s.log.Infof(pageCtx, "凭证已刷新，从原游标重试当前页")
				continue
			}
			s.checkpoint(ctx, scope, cursor, report)
			return report, err
		}

		report.Pages++
		report.OrdersSeen += pr.OrdersSeen
		report.OrdersSaved += pr.OrdersSaved
		report.LineItemsSaved += pr.LineItemsSaved
		report.NeedsDetailCount += pr.NeedsDetailCount
		report.FoundBoundary = report.FoundBoundary || pr.FoundBoundary
		if pr.LastID != "" {
			report.LastID = pr.LastID
			cursor = pr.LastID
		}
		s.checkpoint(ctx, scope, cursor, report)

		s.log.Infof(pageCtx, "第 %d 页完成 seen=%d saved=%d needsDetail=%d hasMore=%v boundary=%v",
			pageNo, pr.OrdersSeen, pr.OrdersSaved, pr.NeedsDetailCount, pr.HasMore, pr.FoundBoundary)

		if pr.FoundBoundary || !pr.HasMore || pr.OrdersSeen == 0 {
			break
		}
		pageNo++
	}
	return report, nil
}

// RefreshDetail 抓取单个订单的完整详情并整组替换本地商品行
// 订单状态已到终态时把待补登记置为完成
func (s *SyncService) RefreshDetail(ctx context.Context, creds etcred.Credentials, orderID string) (*etorder.Order, int, error) {
	if err := creds.Validate(); err != nil {
		return nil, 0, err
	}
	if orderID == "" {
		return nil, 0, errorx.New(errorx.KindValidation, "订单号不能为空")
	}

	row, err := s.fetcher.FetchOrderDetail(ctx, creds, orderID)
	if err != nil {
		return nil, 0, err
	}
	order := NormalizeOrder(row)
	if order.OrderID == "" {
		return nil, 0, errorx.New(errorx.KindMalformed, "详情响应缺少订单号")
	}

	saved, err := s.store.UpsertOrder(ctx, order)
	if err != nil {
		return nil, 0, err
	}
	if err := s.store.MarkDetailComplete(ctx, orderID, s.statuses.IsFinal(order.Status.Name)); err != nil {
		return nil, 0, err
	}
	return order, saved, nil
}

// DetailComplete 判断订单是否已到终态，补抓可以就此收尾
func (s *SyncService) DetailComplete(order *etorder.Order) bool {
	return s.statuses.IsFinal(order.Status.Name)
}

// checkpoint 保存断点，失败只告警
func (s *SyncService) checkpoint(ctx context.Context, scope, cursor string, report *RunReport) {
	if err := s.store.SaveCheckpoint(ctx, scope, cursor, report); err != nil {
		s.log.Warnf(ctx, "保存同步断点失败 scope=%s err=%v", scope, err)
	}
}

// scopeForTarget 根据是否携带边界推导检查点作用域
func scopeForTarget(target string) string {
	if target == "" {
		return etorder.SyncScopeFull
	}
	return etorder.SyncScopeIncremental
}

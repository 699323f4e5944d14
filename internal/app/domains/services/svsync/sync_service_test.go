package svsync

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etcred"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/qiandao"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/errorx"
)

type fetchCall struct {
	limit  int
	lastID string
	sign   string
}

type fetchResult struct {
	page *qiandao.Page
	err  error
}

// fakeFetcher 按预置脚本逐次返回页结果
type fakeFetcher struct {
	calls     []fetchCall
	results   []fetchResult
	detailRow *qiandao.RawRow
	detailErr error
}

func (f *fakeFetcher) FetchPage(_ context.Context, creds etcred.Credentials, limit int, lastID string) (*qiandao.Page, error) {
	f.calls = append(f.calls, fetchCall{limit: limit, lastID: lastID, sign: creds.Sign})
	if len(f.results) == 0 {
		return &qiandao.Page{}, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.page, r.err
}

func (f *fakeFetcher) FetchOrderDetail(_ context.Context, _ etcred.Credentials, _ string) (*qiandao.RawRow, error) {
	return f.detailRow, f.detailErr
}

// fakeStore 内存仓储
type fakeStore struct {
	savedOrders    []*etorder.Order
	flagged        []string
	upserted       []*etorder.Order
	markerComplete map[string]bool
	checkpoints    map[string]string
	saveErr        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		markerComplete: map[string]bool{},
		checkpoints:    map[string]string{},
	}
}

func (s *fakeStore) SavePage(_ context.Context, complete []*etorder.Order, needsDetail []string) (int, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	saved := 0
	for _, o := range complete {
		s.savedOrders = append(s.savedOrders, o)
		saved += len(o.Items)
	}
	s.flagged = append(s.flagged, needsDetail...)
	return saved, nil
}

func (s *fakeStore) UpsertOrder(_ context.Context, order *etorder.Order) (int, error) {
	s.upserted = append(s.upserted, order)
	return len(order.Items), nil
}

func (s *fakeStore) MarkNeedsDetail(_ context.Context, orderID string) error {
	s.flagged = append(s.flagged, orderID)
	return nil
}

func (s *fakeStore) MarkDetailComplete(_ context.Context, orderID string, complete bool) error {
	s.markerComplete[orderID] = complete
	return nil
}

func (s *fakeStore) ListNeedsDetail(_ context.Context, _ bool) ([]*etorder.NeedsDetailMarker, error) {
	return nil, nil
}

func (s *fakeStore) Stats(_ context.Context) (*etorder.AggregateStats, error) {
	return &etorder.AggregateStats{}, nil
}

func (s *fakeStore) SaveCheckpoint(_ context.Context, scope, cursor string, _ interface{}) error {
	s.checkpoints[scope] = cursor
	return nil
}

func (s *fakeStore) Checkpoint(_ context.Context, _ string) (*etorder.SyncCheckpoint, error) {
	return nil, nil
}

// fakeAwaiter 立即返回预置的新凭证
type fakeAwaiter struct {
	fresh etcred.Credentials
	waits int
}

func (a *fakeAwaiter) Await(_ context.Context) (etcred.Credentials, error) {
	a.waits++
	return a.fresh, nil
}

// fakePublisher 记录分发过的订单号
type fakePublisher struct {
	published []string
	err       error
}

func (p *fakePublisher) PublishDetailJob(_ context.Context, orderID string) error {
	p.published = append(p.published, orderID)
	return p.err
}

func testCreds() etcred.Credentials {
	return etcred.Credentials{Authorization: "Bearer t", Sign: "s1", SignTimestamp: "1700000000000"}
}

func listRow(orderID, status, paidAt string, quantities ...int) qiandao.RawRow {
	products := make([]qiandao.RawProduct, 0, len(quantities))
	total := 0
	for i, q := range quantities {
		products = append(products, qiandao.RawProduct{
			ProductName: "商品",
			Price:       int64(100 * (i + 1)),
			Amount:      q,
		})
		total += q
	}
	return qiandao.RawRow{
		OrderInfo: &qiandao.RawOrderInfo{
			OrderID: orderID,
			Status:  qiandao.RawStatus{Name: status},
			PaidAt:  paidAt,
		},
		Products:   products,
		ProductNum: strconv.Itoa(total),
	}
}

func page(rows ...qiandao.RawRow) *qiandao.Page {
	p := &qiandao.Page{Rows: rows, Count: len(rows)}
	if len(rows) > 0 {
		p.LastID = rows[len(rows)-1].OrderInfo.OrderID
	}
	return p
}

func newTestService(fetcher *fakeFetcher, store *fakeStore, awaiter CredentialAwaiter, publisher DetailPublisher) *SyncService {
	return NewSyncService(fetcher, store, awaiter, publisher, etorder.NewStatusTable(nil), noopLogger{})
}

// noopLogger 测试用空日志器
type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...interface{}) {}
func (noopLogger) Infof(context.Context, string, ...interface{})  {}
func (noopLogger) Warnf(context.Context, string, ...interface{})  {}
func (noopLogger) Errorf(context.Context, string, ...interface{}) {}
func (noopLogger) Sync() error                                    { return nil }

func TestRun_FullSync(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{
		{page: page(
			listRow("300", "交易成功", "1711679400", 1),
			listRow("200", "交易成功", "1711593000", 1, 1),
		)},
		{page: page(
			listRow("100", "交易关闭", "1711506600", 1),
		)},
	}}
	store := newFakeStore()
	svc := newTestService(fetcher, store, nil, nil)

	report, err := svc.Run(context.Background(), RunOptions{
		Credentials: testCreds(),
		Limit:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 3, report.OrdersSeen)
	assert.Equal(t, 3, report.OrdersSaved)
	assert.Equal(t, 4, report.LineItemsSaved)
	assert.Equal(t, "100", report.LastID)
	assert.False(t, report.FoundBoundary)

	// 第二页用第一页末条订单号作游标
	require.Len(t, fetcher.calls, 2)
	assert.Empty(t, fetcher.calls[0].lastID)
	assert.Equal(t, "200", fetcher.calls[1].lastID)

	// 每页提交后都推进断点
	assert.Equal(t, "100", store.checkpoints[etorder.SyncScopeFull])
}

func TestRun_IncrementalBoundary(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{
		{page: page(
			listRow("200", "交易成功", "1711679400", 1),
			listRow("150", "交易成功", "1711593000", 1),
		)},
	}}
	store := newFakeStore()
	svc := newTestService(fetcher, store, nil, nil)

	report, err := svc.Run(context.Background(), RunOptions{
		Credentials:   testCreds(),
		Limit:         2,
		TargetOrderID: "150",
	})
	require.NoError(t, err)

	// 订单号大于边界的落库，等于边界的跳过，命中后整轮结束
	assert.True(t, report.FoundBoundary)
	assert.Equal(t, 1, report.OrdersSaved)
	require.Len(t, store.savedOrders, 1)
	assert.Equal(t, "200", store.savedOrders[0].OrderID)
	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, "150", store.checkpoints[etorder.SyncScopeIncremental])
}

func TestRun_NonNumericTarget(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(fetcher, newFakeStore(), nil, nil)

	_, err := svc.Run(context.Background(), RunOptions{
		Credentials:   testCreds(),
		TargetOrderID: "abc123",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.KindValidation, errorx.KindOf(err))
	assert.Empty(t, fetcher.calls)
}

func TestRun_AnomalyGoesToNeedsDetail(t *testing.T) {
	anomalous := listRow("500", "交易成功", "1711679400", 1, 2)
	anomalous.ProductNum = "5"

	fetcher := &fakeFetcher{results: []fetchResult{
		{page: page(anomalous)},
	}}
	store := newFakeStore()
	publisher := &fakePublisher{}
	svc := newTestService(fetcher, store, nil, publisher)

	report, err := svc.Run(context.Background(), RunOptions{Credentials: testCreds(), Limit: 2})
	require.NoError(t, err)

	// 商品行不可信：整单不落库，只登记并分发补抓任务
	assert.Equal(t, 1, report.NeedsDetailCount)
	assert.Zero(t, report.OrdersSaved)
	assert.Empty(t, store.savedOrders)
	assert.Equal(t, []string{"500"}, store.flagged)
	assert.Equal(t, []string{"500"}, publisher.published)
}

func TestRun_SignatureExpiredResume(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{
		{err: errorx.New(errorx.KindSignatureExpired, "签名失效")},
		{page: page(listRow("100", "交易成功", "1711679400", 1))},
	}}
	store := newFakeStore()
	awaiter := &fakeAwaiter{fresh: etcred.Credentials{Sign: "s2", SignTimestamp: "1700000001000"}}
	svc := newTestService(fetcher, store, awaiter, nil)

	report, err := svc.Run(context.Background(), RunOptions{
		Credentials: testCreds(),
		Limit:       2,
		StartLastID: "200",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.CredentialWaits)
	assert.Equal(t, 1, awaiter.waits)

	// 同一游标重试，第二次携带合并后的新签名、沿用旧 authorization
	require.Len(t, fetcher.calls, 2)
	assert.Equal(t, "200", fetcher.calls[0].lastID)
	assert.Equal(t, "200", fetcher.calls[1].lastID)
	assert.Equal(t, "s1", fetcher.calls[0].sign)
	assert.Equal(t, "s2", fetcher.calls[1].sign)
	assert.Equal(t, 1, report.OrdersSaved)
}

func TestRun_SignatureExpiredWithoutAwaiter(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{
		{err: errorx.New(errorx.KindSignatureExpired, "签名失效")},
	}}
	store := newFakeStore()
	svc := newTestService(fetcher, store, nil, nil)

	_, err := svc.Run(context.Background(), RunOptions{
		Credentials: testCreds(),
		StartLastID: "200",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.KindSignatureExpired, errorx.KindOf(err))

	// 中止时保留游标，断点可续跑
	assert.Equal(t, "200", store.checkpoints[etorder.SyncScopeFull])
}

func TestRunPage_SinglePage(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{
		{page: page(
			listRow("300", "交易成功", "1711679400", 1),
			listRow("200", "交易成功", "1711593000", 1),
		)},
	}}
	store := newFakeStore()
	svc := newTestService(fetcher, store, nil, nil)

	report, err := svc.RunPage(context.Background(), PageOptions{
		Credentials: testCreds(),
		Limit:       2,
	})
	require.NoError(t, err)

	// 满页表示还有后续页，单页接口只抓一页不续翻
	assert.True(t, report.HasMore)
	assert.Equal(t, "200", report.LastID)
	assert.Equal(t, 2, report.OrdersSaved)
	require.Len(t, fetcher.calls, 1)
}

func TestRunPage_Guard(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, newFakeStore(), nil, nil)
	svc.running.Store(true)

	_, err := svc.RunPage(context.Background(), PageOptions{Credentials: testCreds()})
	assert.ErrorIs(t, err, errorx.ErrRunInProgress)
}

func TestRun_Guard(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, newFakeStore(), nil, nil)
	svc.running.Store(true)

	_, err := svc.Run(context.Background(), RunOptions{Credentials: testCreds()})
	assert.ErrorIs(t, err, errorx.ErrRunInProgress)
}

func TestRun_GuardReleasedAfterRun(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, newFakeStore(), nil, nil)

	_, err := svc.Run(context.Background(), RunOptions{Credentials: testCreds()})
	require.NoError(t, err)

	// 上一轮结束后占位释放，后续同步可以再次获取
	_, err = svc.RunPage(context.Background(), PageOptions{Credentials: testCreds()})
	require.NoError(t, err)
	assert.False(t, svc.running.Load())
}

func TestRefreshDetail(t *testing.T) {
	t.Run("终态订单替换商品行并完结登记", func(t *testing.T) {
		row := listRow("700", "交易成功", "1711679400", 2)
		fetcher := &fakeFetcher{detailRow: &row}
		store := newFakeStore()
		svc := newTestService(fetcher, store, nil, nil)

		order, saved, err := svc.RefreshDetail(context.Background(), testCreds(), "700")
		require.NoError(t, err)
		assert.Equal(t, "700", order.OrderID)
		assert.Equal(t, 1, saved)
		require.Len(t, store.upserted, 1)
		assert.True(t, store.markerComplete["700"])
	})

	t.Run("非终态订单登记保持未完成", func(t *testing.T) {
		row := listRow("701", "等待卖家发货", "1711679400", 1)
		fetcher := &fakeFetcher{detailRow: &row}
		store := newFakeStore()
		svc := newTestService(fetcher, store, nil, nil)

		_, _, err := svc.RefreshDetail(context.Background(), testCreds(), "701")
		require.NoError(t, err)
		assert.False(t, store.markerComplete["701"])
	})

	t.Run("空订单号返回参数错误", func(t *testing.T) {
		svc := newTestService(&fakeFetcher{}, newFakeStore(), nil, nil)
		_, _, err := svc.RefreshDetail(context.Background(), testCreds(), "")
		assert.Equal(t, errorx.KindValidation, errorx.KindOf(err))
	})
}

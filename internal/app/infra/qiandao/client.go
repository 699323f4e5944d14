package qiandao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xixiwenxuanhe/order-management/internal/app/config"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etcred"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/errorx"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
)

const (
	listOrdersPath  = "/order-web/user/v3/load-order-list"
	orderDetailPath = "/order-web/user/v3/load-order-details"
)

// Client 上游订单平台客户端
// 单次请求单次分类：不重试、不续签，凭证由调用方注入
type Client struct {
	baseURL           string
	httpClient        *http.Client
	statusList        []string
	signExpiredSubstr string
	log               logger.Logger
}

// NewClient 创建上游客户端
func NewClient(cfg config.VendorConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:           strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:        &http.Client{Timeout: cfg.Timeout},
		statusList:        cfg.StatusList,
		signExpiredSubstr: cfg.SignExpiredSubstr,
		log:               log,
	}
}

// FetchPage 抓取一页订单列表
// lastID 为空表示从最新一页开始；返回的 LastID 供下一页链式使用
func (c *Client) FetchPage(ctx context.Context, creds etcred.Credentials, limit int, lastID string) (*Page, error) {
	c.log.Debugf(ctx, "[Qiandao] 拉取订单列表: limit=%d lastId=%q", limit, lastID)

	body := listRequest{
		Limit:        limit,
		LastID:       lastID,
		SellerIDList: []string{},
		StatusList:   c.statusList,
	}

	raw, err := c.post(ctx, listOrdersPath, creds, body)
	if err != nil {
		return nil, err
	}

	var resp listEnvelope
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errorx.Wrap(errorx.KindMalformed, "响应体不是合法的订单列表包装", err)
	}
	if err := c.checkCode(resp.envelope); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, errorx.New(errorx.KindMalformed, "响应缺少 data 字段")
	}

	return buildPage(resp.Data.RowList), nil
}

// FetchOrderDetail 抓取单个订单的完整详情
func (c *Client) FetchOrderDetail(ctx context.Context, creds etcred.Credentials, orderID string) (*RawRow, error) {
	raw, err := c.post(ctx, orderDetailPath, creds, detailRequest{OrderID: orderID})
	if err != nil {
		return nil, err
	}

	var resp detailEnvelope
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errorx.Wrap(errorx.KindMalformed, "响应体不是合法的订单详情包装", err)
	}
	if err := c.checkCode(resp.envelope); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.OrderInfo == nil {
		return nil, errorx.New(errorx.KindMalformed, "详情响应缺少订单数据")
	}

	return resp.Data, nil
}

// post 发送一次上游请求并返回原始响应体
func (c *Client) post(ctx context.Context, path string, creds etcred.Credentials, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errorx.Wrap(errorx.KindValidation, "请求体序列化失败", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errorx.Wrap(errorx.KindTransport, "构造请求失败", err)
	}
	c.setHeaders(req, creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errorx.Wrap(errorx.KindTransport, "请求上游失败", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorx.Wrap(errorx.KindTransport, "读取响应失败", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errorx.Newf(errorx.KindTransport, "上游返回状态码 %d: %s", resp.StatusCode, firstN(raw, 200))
	}

	return raw, nil
}

// checkCode 分类应用层错误
// 签名失效通过专用错误文案判别，其余 code != 0 与传输失败同等处理（中止本轮）
func (c *Client) checkCode(env envelope) error {
	if env.Code == 0 {
		return nil
	}
	if c.signExpiredSubstr != "" && strings.Contains(env.Message, c.signExpiredSubstr) {
		return errorx.Newf(errorx.KindSignatureExpired, "签名失效: %s", env.Message)
	}
	return errorx.Newf(errorx.KindTransport, "上游拒绝请求 (code=%d): %s", env.Code, env.Message)
}

// setHeaders 设置固定客户端身份头与动态凭证头
func (c *Client) setHeaders(req *http.Request, creds etcred.Credentials) {
	// accept-encoding 交给 transport 处理，手动设置会关闭自动解压
	fixed := map[string]string{
		"accept-language":                "zh-CN",
		"content-type":                   "application/json",
		"user-agent":                     "Kuril+/5.91.1 (Android 15)",
		"referer":                        "https://qiandao.cn",
		"x-request-version":              "5.91.1",
		"x-request-sign-type":            "RSA2",
		"x-request-sign-version":         "v1",
		"x-request-package-sign-version": "0.0.3",
		"x-request-device":               "android",
		"x-request-channel":              "xiaomi",
		"x-request-utm_source":           "xiaomi",
		"x-client-package-id":            "1006",
		"x-request-package-id":           "1006",
		"x-echo-region":                  "CN",
		"x-echo-teen-mode":               "false",
		"downloadchannel":                "xiaomi",
	}
	for k, v := range fixed {
		req.Header.Set(k, v)
	}

	req.Header.Set("authorization", creds.Authorization)
	req.Header.Set("x-request-sign", creds.Sign)
	req.Header.Set("x-request-timestamp", creds.SignTimestamp)
}

// buildPage 从原始行构建页结果，忽略缺少 orderInfo 的记录
func buildPage(rows []RawRow) *Page {
	page := &Page{Rows: make([]RawRow, 0, len(rows))}
	for _, row := range rows {
		if row.OrderInfo == nil || row.OrderInfo.OrderID == "" {
			continue
		}
		page.Rows = append(page.Rows, row)
		page.LastID = row.OrderInfo.OrderID
	}
	page.Count = len(page.Rows)
	return page
}

// firstN 截断响应体用于错误信息
func firstN(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return fmt.Sprintf("%s...", raw[:n])
}

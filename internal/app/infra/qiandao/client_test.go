package qiandao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xixiwenxuanhe/order-management/internal/app/config"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etcred"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/errorx"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...interface{}) {}
func (noopLogger) Infof(context.Context, string, ...interface{})  {}
func (noopLogger) Warnf(context.Context, string, ...interface{})  {}
func (noopLogger) Errorf(context.Context, string, ...interface{}) {}
func (noopLogger) Sync() error                                    { return nil }

func newTestClient(baseURL string) *Client {
	return NewClient(config.VendorConfig{
		BaseURL:           baseURL,
		SignExpiredSubstr: "验签失败",
		StatusList:        []string{"WAIT_SELLER_SEND_GOODS"},
	}, noopLogger{})
}

func testCreds() etcred.Credentials {
	return etcred.Credentials{Authorization: "Bearer t", Sign: "sig", SignTimestamp: "1700000000000"}
}

func TestFetchPage(t *testing.T) {
	t.Run("成功分页", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/order-web/user/v3/load-order-list", r.URL.Path)
			assert.Equal(t, "Bearer t", r.Header.Get("authorization"))
			assert.Equal(t, "sig", r.Header.Get("x-request-sign"))
			assert.Equal(t, "1700000000000", r.Header.Get("x-request-timestamp"))
			assert.Equal(t, "RSA2", r.Header.Get("x-request-sign-type"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			_, _ = w.Write([]byte(`{
				"code": 0,
				"message": "ok",
				"data": {
					"rowList": [
						{"orderInfo": {"orderId": "300"}, "products": [], "productNum": "0"},
						{"orderInfo": null},
						{"orderInfo": {"orderId": "200"}, "products": [], "productNum": "0"}
					]
				}
			}`))
		}))
		defer server.Close()

		page, err := newTestClient(server.URL).FetchPage(context.Background(), testCreds(), 30, "400")
		require.NoError(t, err)

		// 缺 orderInfo 的记录被忽略，末条订单号作下一页游标
		assert.Equal(t, 2, page.Count)
		assert.Equal(t, "200", page.LastID)

		assert.Equal(t, float64(30), gotBody["limit"])
		assert.Equal(t, "400", gotBody["lastId"])
		assert.Equal(t, false, gotBody["waitPayAppointmentExpress"])
		assert.Nil(t, gotBody["deliverPattern"])
		assert.Equal(t, []interface{}{"WAIT_SELLER_SEND_GOODS"}, gotBody["statusList"])
	})

	t.Run("首页不带游标", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"code":0,"data":{"rowList":[]}}`))
		}))
		defer server.Close()

		page, err := newTestClient(server.URL).FetchPage(context.Background(), testCreds(), 30, "")
		require.NoError(t, err)
		assert.Zero(t, page.Count)

		_, hasLastID := gotBody["lastId"]
		assert.False(t, hasLastID)
	})

	t.Run("验签失败判为签名失效", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":100403,"message":"验签失败，请重试"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchPage(context.Background(), testCreds(), 30, "")
		require.Error(t, err)
		assert.Equal(t, errorx.KindSignatureExpired, errorx.KindOf(err))
	})

	t.Run("其他应用层错误判为传输失败", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":500,"message":"系统繁忙"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchPage(context.Background(), testCreds(), 30, "")
		require.Error(t, err)
		assert.Equal(t, errorx.KindTransport, errorx.KindOf(err))
	})

	t.Run("非 200 状态判为传输失败", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchPage(context.Background(), testCreds(), 30, "")
		require.Error(t, err)
		assert.Equal(t, errorx.KindTransport, errorx.KindOf(err))
	})

	t.Run("响应体不是 JSON 判为格式错误", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>gateway error</html>`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchPage(context.Background(), testCreds(), 30, "")
		require.Error(t, err)
		assert.Equal(t, errorx.KindMalformed, errorx.KindOf(err))
	})

	t.Run("缺少 data 判为格式错误", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":0,"message":"ok"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchPage(context.Background(), testCreds(), 30, "")
		require.Error(t, err)
		assert.Equal(t, errorx.KindMalformed, errorx.KindOf(err))
	})
}

func TestFetchOrderDetail(t *testing.T) {
	t.Run("成功返回完整记录", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/order-web/user/v3/load-order-details", r.URL.Path)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "700", body["orderId"])

			_, _ = w.Write([]byte(`{
				"code": 0,
				"data": {
					"orderInfo": {"orderId": "700", "status": {"name": "交易成功"}},
					"products": [{"productName": "商品A", "price": 1500, "amount": 2}],
					"productNum": "2"
				}
			}`))
		}))
		defer server.Close()

		row, err := newTestClient(server.URL).FetchOrderDetail(context.Background(), testCreds(), "700")
		require.NoError(t, err)
		assert.Equal(t, "700", row.OrderInfo.OrderID)
		require.Len(t, row.Products, 1)
		assert.Equal(t, int64(1500), row.Products[0].Price)
	})

	t.Run("缺少订单数据判为格式错误", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":0,"data":null}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchOrderDetail(context.Background(), testCreds(), "700")
		require.Error(t, err)
		assert.Equal(t, errorx.KindMalformed, errorx.KindOf(err))
	})
}

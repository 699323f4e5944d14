package request

// SyncFetchRequest 单页同步请求，调用方用返回的 last_id 链式翻页
// 凭证随请求传入，服务端不保存
type SyncFetchRequest struct {
	Authorization    string `json:"authorization" binding:"required" example:"Bearer eyJhbGciOi..."`
	RequestSign      string `json:"x_request_sign" binding:"required" example:"a1b2c3d4"`
	RequestTimestamp string `json:"x_request_timestamp" binding:"required" example:"1735689600000"`
	Limit            int    `json:"limit" binding:"omitempty,min=1,max=100" example:"30"`
	LastID           string `json:"last_id" example:"2403290101"`
}

// SyncFetchIncrementalRequest 增量单页同步请求，命中目标订单号即报告边界
type SyncFetchIncrementalRequest struct {
	SyncFetchRequest
	TargetOrderID string `json:"target_order_id" binding:"required,number" example:"2403290101"`
}

// OrderDetailRequest 单订单详情补抓请求
type OrderDetailRequest struct {
	Authorization    string `json:"authorization" binding:"required"`
	RequestSign      string `json:"x_request_sign" binding:"required"`
	RequestTimestamp string `json:"x_request_timestamp" binding:"required"`
	OrderID          string `json:"order_id" binding:"required,number" example:"2403290101"`
}

// RefreshCredentialsRequest 凭证刷新通知
// authorization 可省略，省略时挂起中的轮次沿用旧令牌
type RefreshCredentialsRequest struct {
	Authorization    string `json:"authorization"`
	RequestSign      string `json:"x_request_sign" binding:"required"`
	RequestTimestamp string `json:"x_request_timestamp" binding:"required"`
}

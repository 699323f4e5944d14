package response

import "time"

// StatsResponse 存储聚合统计响应（DTO）
type StatsResponse struct {
	TotalOrders               int64    `json:"total_orders"`
	TotalRecords              int64    `json:"total_records"`
	LatestTime                string   `json:"latest_time"`
	LatestOrderID             string   `json:"latest_order_id"`
	IncompleteEarliestTime    string   `json:"incomplete_earliest_time"`
	IncompleteEarliestOrderID string   `json:"incomplete_earliest_order_id"`
	IncompleteOrderIDs        []string `json:"incomplete_order_ids"`
	NeedsDetailPending        int64    `json:"needs_detail_pending"`
}

// NeedsDetailItem 待补详情登记项（DTO）
type NeedsDetailItem struct {
	OrderID   string    `json:"order_id"`
	Complete  bool      `json:"complete"`
	FlaggedAt time.Time `json:"flagged_at"`
}

// NeedsDetailListResponse 待补详情列表响应（DTO）
type NeedsDetailListResponse struct {
	Total int                `json:"total"`
	Items []*NeedsDetailItem `json:"items"`
}

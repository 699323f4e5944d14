package response

// SyncPageResponse 单页同步结果响应（DTO）
type SyncPageResponse struct {
	OrdersSeen       int    `json:"orders_seen"`
	OrdersSaved      int    `json:"orders_saved"`
	LineItemsSaved   int    `json:"line_items_saved"`
	NeedsDetailCount int    `json:"needs_detail_count"`
	LastID           string `json:"last_id"`
	HasMore          bool   `json:"has_more"`
	FoundBoundary    bool   `json:"found_boundary,omitempty"`
}

// OrderDetailResponse 详情补抓结果响应（DTO）
type OrderDetailResponse struct {
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	LineItemsSaved int    `json:"line_items_saved"`
	DetailComplete bool   `json:"detail_complete"`
}

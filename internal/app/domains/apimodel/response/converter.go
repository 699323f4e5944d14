package response

import (
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/services/svsync"
)

// FromPageReport 从单页同步结果转换为响应 DTO
func FromPageReport(report *svsync.PageReport) *SyncPageResponse {
	return &SyncPageResponse{
		OrdersSeen:       report.OrdersSeen,
		OrdersSaved:      report.OrdersSaved,
		LineItemsSaved:   report.LineItemsSaved,
		NeedsDetailCount: report.NeedsDetailCount,
		LastID:           report.LastID,
		HasMore:          report.HasMore,
		FoundBoundary:    report.FoundBoundary,
	}
}

// FromAggregateStats 从领域对象转换为响应 DTO
func FromAggregateStats(stats *etorder.AggregateStats) *StatsResponse {
	resp := &StatsResponse{
		TotalOrders:               stats.TotalOrders,
		TotalRecords:              stats.TotalRecords,
		LatestTime:                stats.LatestTime,
		LatestOrderID:             stats.LatestOrderID,
		IncompleteEarliestTime:    stats.IncompleteEarliestTime,
		IncompleteEarliestOrderID: stats.IncompleteEarliestOrderID,
		IncompleteOrderIDs:        stats.IncompleteOrderIDs,
		NeedsDetailPending:        stats.NeedsDetailPending,
	}
	if resp.IncompleteOrderIDs == nil {
		resp.IncompleteOrderIDs = []string{}
	}
	return resp
}

// FromNeedsDetailMarkers 从登记项列表转换为响应 DTO
func FromNeedsDetailMarkers(markers []*etorder.NeedsDetailMarker) *NeedsDetailListResponse {
	items := make([]*NeedsDetailItem, 0, len(markers))
	for _, m := range markers {
		items = append(items, &NeedsDetailItem{
			OrderID:   m.OrderID,
			Complete:  m.Complete,
			FlaggedAt: m.FlaggedAt,
		})
	}
	return &NeedsDetailListResponse{Total: len(items), Items: items}
}

package svsync

import (
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
)

// Disposition 单个订单的落库处置
type Disposition int

const (
	// DispositionComplete 商品行可信，整单落库
	DispositionComplete Disposition = iota
	// DispositionNeedsDetail 商品行不完整，丢弃商品行并标记待补详情
	DispositionNeedsDetail
)

// Classify 判定订单商品行是否完整
// 上游声称的商品总数大于商品行数量之和时，说明列表接口漏发了商品行，
// 此时这批行不可信，整单转入待补详情
func Classify(order *etorder.Order) Disposition {
	if order.ProductNum > order.ItemQuantitySum() {
		return DispositionNeedsDetail
	}
	return DispositionComplete
}

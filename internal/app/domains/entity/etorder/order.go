package etorder

import (
	"strconv"
	"time"

	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/errorx"
)

// Order 规范化后的订单（瞬态对象，落库时拆解为商品行）
type Order struct {
	OrderID    string
	CreatedAt  string
	PaidAt     string // 已转为 "2006-01-02 15:04:05" 格式的下单时间
	Status     Status
	Buyer      Buyer
	Seller     Seller
	Receiver   string
	Address    string
	Pricing    Pricing
	ProductNum int // 上游声称的商品总数
	Items      []LineItem
}

// Status 订单状态（名称 + 状态键）
type Status struct {
	Name string
	Key  string
}

// Buyer 买家摘要
type Buyer struct {
	Name  string
	Phone string
}

// Seller 卖家摘要
type Seller struct {
	Name string
}

// Pricing 价格信息（单位：分）
type Pricing struct {
	OrderPrice   int64
	PaidPrice    int64
	ExpressPrice int64
}

// LineItem 订单商品行
type LineItem struct {
	ProductName string
	Quantity    int
	UnitPrice   int64
	Amount      int64 // Quantity × UnitPrice
}

// ItemQuantitySum 本页实际返回的商品数量之和
func (o *Order) ItemQuantitySum() int {
	sum := 0
	for _, item := range o.Items {
		sum += item.Quantity
	}
	return sum
}

// NeedsDetailMarker 待补抓详情的订单登记
type NeedsDetailMarker struct {
	OrderID   string
	Complete  bool
	FlaggedAt time.Time
}

// AggregateStats 存储聚合统计（派生数据，不落库）
type AggregateStats struct {
	TotalOrders               int64
	TotalRecords              int64
	LatestTime                string
	LatestOrderID             string
	IncompleteEarliestTime    string
	IncompleteEarliestOrderID string // 下一次增量同步的目标边界
	IncompleteOrderIDs        []string
	NeedsDetailPending        int64
}

// 同步范围
const (
	SyncScopeFull        = "full"
	SyncScopeIncremental = "incremental"
)

// SyncCheckpoint 同步断点（按范围区分全量/增量）
type SyncCheckpoint struct {
	Scope     string
	Cursor    string
	Stats     []byte
	UpdatedAt time.Time
}

// CompareOrderID 按数值比较两个订单号
// 返回值同 strings.Compare；任一订单号非数字时返回参数错误
func CompareOrderID(a, b string) (int, error) {
	ai, err := strconv.ParseInt(a, 10, 64)
	if err != nil {
		return 0, errorx.Newf(errorx.KindValidation, "订单号不是数字: %q", a)
	}
	bi, err := strconv.ParseInt(b, 10, 64)
	if err != nil {
		return 0, errorx.Newf(errorx.KindValidation, "订单号不是数字: %q", b)
	}
	switch {
	case ai < bi:
		return -1, nil
	case ai > bi:
		return 1, nil
	default:
		return 0, nil
	}
}

package svsync

import (
	"strconv"
	"time"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/qiandao"
)

// transactionTimeLayout 落库的交易时间格式，字典序即时间序
const transactionTimeLayout = "2006-01-02 15:04:05"

// NormalizeOrder 上游原始记录映射为规范订单
// 缺失字段一律取零值，规范化本身不会失败；只有结构性缺失的容器按零个商品处理
func NormalizeOrder(row *qiandao.RawRow) *etorder.Order {
	order := &etorder.Order{}
	if row == nil {
		return order
	}

	if info := row.OrderInfo; info != nil {
		order.OrderID = info.OrderID
		order.CreatedAt = info.CreatedAt
		order.PaidAt = formatTimestamp(info.PaidAt)
		order.Status = etorder.Status{Name: info.Status.Name, Key: info.Status.Key}
		order.Buyer = etorder.Buyer{Name: info.Buyer.Name, Phone: info.Buyer.Phone}
		order.Seller = etorder.Seller{Name: info.Seller.Name}
		order.Receiver = info.Receiver
		order.Address = info.Address
		order.Pricing = etorder.Pricing{
			OrderPrice:   info.OrderPrice,
			PaidPrice:    info.PaidPrice,
			ExpressPrice: info.ExpressPrice,
		}
	}

	order.ProductNum = parseProductNum(row.ProductNum)
	order.Items = normalizeItems(row.Products)
	return order
}

// normalizeItems 商品列表映射为商品行，金额 = 数量 × 单价
func normalizeItems(products []qiandao.RawProduct) []etorder.LineItem {
	if len(products) == 0 {
		return nil
	}

	items := make([]etorder.LineItem, 0, len(products))
	for _, p := range products {
		items = append(items, etorder.LineItem{
			ProductName: p.ProductName,
			Quantity:    p.Amount,
			UnitPrice:   p.Price,
			Amount:      int64(p.Amount) * p.Price,
		})
	}
	return items
}

// parseProductNum 解析上游声称的商品总数，解析失败按 0 处理
func parseProductNum(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// formatTimestamp 上游的秒级时间戳转为本地时间文本
// 无法解析的值原样保留，不丢数据
func formatTimestamp(raw string) string {
	if raw == "" {
		return ""
	}
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	return time.Unix(sec, 0).Format(transactionTimeLayout)
}

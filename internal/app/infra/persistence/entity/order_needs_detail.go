package entity

import "time"

// OrderNeedsDetail 待补抓详情的订单登记（orders_need_details 表）
// 列表页少报商品数的订单记录在此，complete 由详情补抓流程置位
type OrderNeedsDetail struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   string    `gorm:"column:order_id;type:varchar(64);not null;uniqueIndex:uk_order_id"`
	Complete  bool      `gorm:"column:complete;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (OrderNeedsDetail) TableName() string {
	return "orders_need_details"
}

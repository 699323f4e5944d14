package entity

// OrderProduct 订单商品行（order_products 表）
// 一个订单对应多行；同一订单的整组行在每次同步时整体替换
type OrderProduct struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID         string `gorm:"column:order_id;type:varchar(64);not null;index:idx_order_id"`
	TransactionTime string `gorm:"column:transaction_time;type:varchar(32)"`
	Status          string `gorm:"column:status;type:varchar(32)"`
	ProductName     string `gorm:"column:product_name;type:varchar(255)"`
	Quantity        int    `gorm:"column:quantity;not null;default:0"`
	UnitPrice       int64  `gorm:"column:unit_price;not null;default:0"`
	Amount          int64  `gorm:"column:amount;not null;default:0"`
	Complete        bool   `gorm:"column:complete;not null;default:false"`
}

// TableName 指定表名
func (OrderProduct) TableName() string {
	return "order_products"
}

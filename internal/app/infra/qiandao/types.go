package qiandao

// envelope 上游统一响应包装，code != 0 为应用层错误
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// listEnvelope 订单列表响应
type listEnvelope struct {
	envelope
	Data *listData `json:"data"`
}

// listData 订单列表数据体
type listData struct {
	RowList []RawRow `json:"rowList"`
}

// detailEnvelope 订单详情响应
type detailEnvelope struct {
	envelope
	Data *RawRow `json:"data"`
}

// RawRow 上游返回的单条订单记录（原样字段，规范化在上层完成）
type RawRow struct {
	OrderInfo  *RawOrderInfo `json:"orderInfo"`
	Products   []RawProduct  `json:"products"`
	ProductNum string        `json:"productNum"`
}

// RawOrderInfo 订单基础信息
type RawOrderInfo struct {
	OrderID      string    `json:"orderId"`
	Status       RawStatus `json:"status"`
	CreatedAt    string    `json:"createdAt"`
	PaidAt       string    `json:"paidAt"`
	Buyer        RawBuyer  `json:"buyer"`
	Seller       RawSeller `json:"seller"`
	Receiver     string    `json:"receiver"`
	Address      string    `json:"address"`
	OrderPrice   int64     `json:"orderPrice"`
	PaidPrice    int64     `json:"paidPrice"`
	ExpressPrice int64     `json:"expressPrice"`
}

// RawStatus 订单状态
type RawStatus struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// RawBuyer 买家信息
type RawBuyer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RawSeller 卖家信息
type RawSeller struct {
	Name string `json:"name"`
}

// RawProduct 商品信息，price 为单价（分）
type RawProduct struct {
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Amount      int    `json:"amount"`
}

// Page 一页抓取结果
type Page struct {
	Rows   []RawRow // 含 orderInfo 的有效记录，保持上游顺序
	Count  int      // 本页记录数
	LastID string   // 末条订单号，作为下一页游标
}

// listRequest 订单列表请求体
type listRequest struct {
	Limit                     int      `json:"limit"`
	LastID                    string   `json:"lastId,omitempty"`
	SellerIDList              []string `json:"sellerIdList"`
	WaitPayAppointmentExpress bool     `json:"waitPayAppointmentExpress"`
	DeliverPattern            *string  `json:"deliverPattern"`
	StatusList                []string `json:"statusList"`
}

// detailRequest 订单详情请求体
type detailRequest struct {
	OrderID string `json:"orderId"`
}

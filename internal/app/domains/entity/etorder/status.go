package etorder

// Meaning 状态的规范含义
// 数据比较一律基于含义枚举，不直接比较上游的本地化字面量
type Meaning string

const (
	MeaningSuccess Meaning = "success" // 交易成功
	MeaningClosed  Meaning = "closed"  // 交易关闭
	MeaningPending Meaning = "pending" // 其余进行中状态
)

// StatusEntry 状态表条目
type StatusEntry struct {
	Key     string
	Name    string
	Meaning Meaning
}

// StatusTable 状态名称/状态键到规范含义的映射表
type StatusTable struct {
	byName map[string]Meaning
	byKey  map[string]Meaning
}

// NewStatusTable 根据配置条目构建状态表，条目为空时使用内置默认表
func NewStatusTable(entries []StatusEntry) *StatusTable {
	if len(entries) == 0 {
		entries = defaultStatusEntries()
	}

	t := &StatusTable{
		byName: make(map[string]Meaning, len(entries)),
		byKey:  make(map[string]Meaning, len(entries)),
	}
	for _, e := range entries {
		if e.Name != "" {
			t.byName[e.Name] = e.Meaning
		}
		if e.Key != "" {
			t.byKey[e.Key] = e.Meaning
		}
	}
	return t
}

// defaultStatusEntries 上游平台的默认状态表
func defaultStatusEntries() []StatusEntry {
	return []StatusEntry{
		{Key: "BUYER_CONFIRM_GOODS", Name: "交易成功", Meaning: MeaningSuccess},
		{Key: "CLOSED", Name: "交易关闭", Meaning: MeaningClosed},
		{Key: "WAIT_BUYER_PAY", Name: "等待买家付款", Meaning: MeaningPending},
		{Key: "WAIT_SELLER_SEND_GOODS", Name: "等待卖家发货", Meaning: MeaningPending},
		{Key: "WAIT_BUYER_CONFIRM_GOODS", Name: "等待买家收货", Meaning: MeaningPending},
		{Key: "REFUNDING", Name: "退款中", Meaning: MeaningPending},
	}
}

// Meaning 查询状态名称的含义，未知状态视为进行中
func (t *StatusTable) Meaning(statusName string) Meaning {
	if m, ok := t.byName[statusName]; ok {
		return m
	}
	return MeaningPending
}

// MeaningByKey 查询状态键的含义
func (t *StatusTable) MeaningByKey(statusKey string) Meaning {
	if m, ok := t.byKey[statusKey]; ok {
		return m
	}
	return MeaningPending
}

// IsSuccess 状态是否为交易成功（商品行 complete 标记的依据）
func (t *StatusTable) IsSuccess(statusName string) bool {
	return t.Meaning(statusName) == MeaningSuccess
}

// IsFinal 状态是否已终结（成功或关闭，详情补抓完成的依据）
func (t *StatusTable) IsFinal(statusName string) bool {
	m := t.Meaning(statusName)
	return m == MeaningSuccess || m == MeaningClosed
}

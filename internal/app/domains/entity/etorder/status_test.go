package etorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTable_Defaults(t *testing.T) {
	table := NewStatusTable(nil)

	assert.Equal(t, MeaningSuccess, table.Meaning("交易成功"))
	assert.Equal(t, MeaningClosed, table.Meaning("交易关闭"))
	assert.Equal(t, MeaningPending, table.Meaning("等待卖家发货"))
	// 未知状态一律视为进行中
	assert.Equal(t, MeaningPending, table.Meaning("从未见过的状态"))

	assert.Equal(t, MeaningSuccess, table.MeaningByKey("BUYER_CONFIRM_GOODS"))
	assert.Equal(t, MeaningPending, table.MeaningByKey("UNKNOWN_KEY"))

	assert.True(t, table.IsSuccess("交易成功"))
	assert.False(t, table.IsSuccess("交易关闭"))

	assert.True(t, table.IsFinal("交易成功"))
	assert.True(t, table.IsFinal("交易关闭"))
	assert.False(t, table.IsFinal("退款中"))
}

func TestStatusTable_CustomEntries(t *testing.T) {
	table := NewStatusTable([]StatusEntry{
		{Key: "DONE", Name: "已完成", Meaning: MeaningSuccess},
	})

	assert.True(t, table.IsSuccess("已完成"))
	// 自定义表不包含默认条目
	assert.False(t, table.IsSuccess("交易成功"))
}

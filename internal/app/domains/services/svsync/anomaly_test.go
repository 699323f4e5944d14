package svsync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
)

func TestClassify(t *testing.T) {
	t.Run("声称数大于行数之和时转待补详情", func(t *testing.T) {
		order := &etorder.Order{
			ProductNum: 5,
			Items: []etorder.LineItem{
				{ProductName: "商品A", Quantity: 2},
				{ProductName: "商品B", Quantity: 1},
			},
		}
		assert.Equal(t, DispositionNeedsDetail, Classify(order))
	})

	t.Run("数量对得上时完整落库", func(t *testing.T) {
		order := &etorder.Order{
			ProductNum: 3,
			Items: []etorder.LineItem{
				{Quantity: 2},
				{Quantity: 1},
			},
		}
		assert.Equal(t, DispositionComplete, Classify(order))
	})

	t.Run("声称数为零时不判异常", func(t *testing.T) {
		// productNum 解析失败落到 0，无商品行的订单按完整处理
		order := &etorder.Order{ProductNum: 0}
		assert.Equal(t, DispositionComplete, Classify(order))
	})

	t.Run("声称数小于行数之和时按完整处理", func(t *testing.T) {
		order := &etorder.Order{
			ProductNum: 1,
			Items:      []etorder.LineItem{{Quantity: 2}},
		}
		assert.Equal(t, DispositionComplete, Classify(order))
	})
}

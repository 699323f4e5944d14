package rporder

import (
	"context"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
)

// OrderStore 订单镜像仓储接口
// 每个写操作各自构成一个事务；SavePage 把整页写入收拢进单个事务
type OrderStore interface {
	// SavePage 持久化一页分类结果：完整订单整组替换落库，
	// 待补抓订单登记标记。任一写入失败则整页回滚
	// 返回本次写入的商品行数
	SavePage(ctx context.Context, complete []*etorder.Order, needsDetail []string) (int, error)

	// UpsertOrder 整组替换单个订单的商品行（幂等）
	UpsertOrder(ctx context.Context, order *etorder.Order) (int, error)

	// MarkNeedsDetail 登记待补抓订单，重复登记会把 complete 重置为 false
	MarkNeedsDetail(ctx context.Context, orderID string) error

	// MarkDetailComplete 更新登记项的完成标记，登记项不存在时静默跳过
	MarkDetailComplete(ctx context.Context, orderID string, complete bool) error

	// ListNeedsDetail 查询登记列表，最近登记的在前
	ListNeedsDetail(ctx context.Context, includeComplete bool) ([]*etorder.NeedsDetailMarker, error)

	// Stats 计算聚合统计（含下一次增量同步的目标边界）
	Stats(ctx context.Context) (*etorder.AggregateStats, error)

	// SaveCheckpoint 保存同步断点（游标 + 本轮统计快照）
	SaveCheckpoint(ctx context.Context, scope, cursor string, stats interface{}) error

	// Checkpoint 读取同步断点，不存在时返回 nil
	Checkpoint(ctx context.Context, scope string) (*etorder.SyncCheckpoint, error)
}

package rporder

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
	"github.com/xixiwenxuanhe/order-management/internal/app/infra/persistence/entity"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/errorx"
)

// OrderStoreImpl 订单镜像仓储实现（GORM）
type OrderStoreImpl struct {
	db       *gorm.DB
	statuses *etorder.StatusTable
}

// NewOrderStore 创建仓储实例
func NewOrderStore(db *gorm.DB, statuses *etorder.StatusTable) OrderStore {
	return &OrderStoreImpl{db: db, statuses: statuses}
}

// SavePage 整页落库：每个完整订单整组替换，每个待补抓订单登记标记
func (s *OrderStoreImpl) SavePage(ctx context.Context, complete []*etorder.Order, needsDetail []string) (int, error) {
	saved := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range complete {
			n, err := s.replaceOrder(tx, order)
			if err != nil {
				return err
			}
			saved += n
		}
		for _, orderID := range needsDetail {
			if err := s.upsertMarker(tx, orderID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, errorx.Wrap(errorx.KindPersistence, "保存页数据失败，事务已回滚", err)
	}
	return saved, nil
}

// UpsertOrder 整组替换单个订单的商品行
func (s *OrderStoreImpl) UpsertOrder(ctx context.Context, order *etorder.Order) (int, error) {
	saved := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.replaceOrder(tx, order)
		if err != nil {
			return err
		}
		saved = n
		return nil
	})
	if err != nil {
		return 0, errorx.Wrap(errorx.KindPersistence, "保存订单失败，事务已回滚", err)
	}
	return saved, nil
}

// replaceOrder 先删后插：同一订单号的旧行整组清除，再写入当前行集
// 重放同一页任意次数收敛到同一行集
func (s *OrderStoreImpl) replaceOrder(tx *gorm.DB, order *etorder.Order) (int, error) {
	if order.OrderID == "" {
		return 0, nil
	}

	if err := tx.Where("order_id = ?", order.OrderID).Delete(&entity.OrderProduct{}).Error; err != nil {
		return 0, err
	}

	rows := s.toRows(order)
	if len(rows) == 0 {
		return 0, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// toRows 订单拆解为商品行；无商品时保留一行占位，避免丢失订单级状态与时间
func (s *OrderStoreImpl) toRows(order *etorder.Order) []entity.OrderProduct {
	isComplete := s.statuses.IsSuccess(order.Status.Name)

	if len(order.Items) == 0 {
		return []entity.OrderProduct{{
			OrderID:         order.OrderID,
			TransactionTime: order.PaidAt,
			Status:          order.Status.Name,
			Complete:        isComplete,
		}}
	}

	rows := make([]entity.OrderProduct, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, entity.OrderProduct{
			OrderID:         order.OrderID,
			TransactionTime: order.PaidAt,
			Status:          order.Status.Name,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			Amount:          item.Amount,
			Complete:        isComplete,
		})
	}
	return rows
}

// MarkNeedsDetail 登记待补抓订单
func (s *OrderStoreImpl) MarkNeedsDetail(ctx context.Context, orderID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.upsertMarker(tx, orderID)
	})
	if err != nil {
		return errorx.Wrap(errorx.KindPersistence, "登记待补抓订单失败", err)
	}
	return nil
}

// upsertMarker 按订单号插入或替换登记项，替换语义下 complete 回落为 false
func (s *OrderStoreImpl) upsertMarker(tx *gorm.DB, orderID string) error {
	marker := entity.OrderNeedsDetail{
		OrderID:   orderID,
		Complete:  false,
		CreatedAt: time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"complete": false, "created_at": marker.CreatedAt}),
	}).Create(&marker).Error
}

// MarkDetailComplete 更新登记项完成标记
// 与补抓流程保持一致：订单不在登记表中时不插入，只跳过
func (s *OrderStoreImpl) MarkDetailComplete(ctx context.Context, orderID string, complete bool) error {
	err := s.db.WithContext(ctx).
		Model(&entity.OrderNeedsDetail{}).
		Where("order_id = ?", orderID).
		Update("complete", complete).Error
	if err != nil {
		return errorx.Wrap(errorx.KindPersistence, "更新登记完成标记失败", err)
	}
	return nil
}

// ListNeedsDetail 查询登记列表，最近登记的在前
func (s *OrderStoreImpl) ListNeedsDetail(ctx context.Context, includeComplete bool) ([]*etorder.NeedsDetailMarker, error) {
	query := s.db.WithContext(ctx).Model(&entity.OrderNeedsDetail{}).Order("id DESC")
	if !includeComplete {
		query = query.Where("complete = ?", false)
	}

	var pos []entity.OrderNeedsDetail
	if err := query.Find(&pos).Error; err != nil {
		return nil, errorx.Wrap(errorx.KindPersistence, "查询待补抓列表失败", err)
	}

	markers := make([]*etorder.NeedsDetailMarker, 0, len(pos))
	for i := range pos {
		markers = append(markers, &etorder.NeedsDetailMarker{
			OrderID:   pos[i].OrderID,
			Complete:  pos[i].Complete,
			FlaggedAt: pos[i].CreatedAt,
		})
	}
	return markers, nil
}

// Stats 计算聚合统计
// transaction_time 存储为 "2006-01-02 15:04:05" 文本，字典序即时间序
func (s *OrderStoreImpl) Stats(ctx context.Context) (*etorder.AggregateStats, error) {
	db := s.db.WithContext(ctx)
	stats := &etorder.AggregateStats{}

	if err := db.Model(&entity.OrderProduct{}).Count(&stats.TotalRecords).Error; err != nil {
		return nil, errorx.Wrap(errorx.KindPersistence, "统计记录数失败", err)
	}
	if err := db.Model(&entity.OrderProduct{}).Distinct("order_id").Count(&stats.TotalOrders).Error; err != nil {
		return nil, errorx.Wrap(errorx.KindPersistence, "统计订单数失败", err)
	}

	var latest entity.OrderProduct
	err := db.Model(&entity.OrderProduct{}).
		Where("transaction_time <> ''").
		Order("transaction_time DESC").
		First(&latest).Error
	if err == nil {
		stats.LatestTime = latest.TransactionTime
		stats.LatestOrderID = latest.OrderID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.Wrap(errorx.KindPersistence, "查询最新订单失败", err)
	}

	// 非交易成功行里最早的一条，即下一次增量同步的目标边界
	var earliest entity.OrderProduct
	err = db.Model(&entity.OrderProduct{}).
		Where("complete = ? AND transaction_time <> ''", false).
		Order("transaction_time ASC").
		First(&earliest).Error
	if err == nil {
		stats.IncompleteEarliestTime = earliest.TransactionTime
		stats.IncompleteEarliestOrderID = earliest.OrderID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.Wrap(errorx.KindPersistence, "查询最早未完成订单失败", err)
	}

	if err := db.Model(&entity.OrderProduct{}).
		Where("complete = ?", false).
		Distinct("order_id").
		Order("order_id DESC").
		Pluck("order_id", &stats.IncompleteOrderIDs).Error; err != nil {
		return nil, errorx.Wrap(errorx.KindPersistence, "查询未完成订单列表失败", err)
	}

	if err := db.Model(&entity.OrderNeedsDetail{}).
		Where("complete = ?", false).
		Count(&stats.NeedsDetailPending).Error; err != nil {
		return nil, errorx.Wrap(errorx.KindPersistence, "统计待补抓订单失败", err)
	}

	return stats, nil
}

// SaveCheckpoint 保存同步断点
func (s *OrderStoreImpl) SaveCheckpoint(ctx context.Context, scope, cursor string, stats interface{}) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return errorx.Wrap(errorx.KindPersistence, "序列化断点统计失败", err)
	}

	state := entity.SyncState{
		Scope:     scope,
		Cursor:    cursor,
		Stats:     statsJSON,
		UpdatedAt: time.Now(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"cursor", "stats", "updated_at"}),
	}).Create(&state).Error
	if err != nil {
		return errorx.Wrap(errorx.KindPersistence, "保存同步断点失败", err)
	}
	return nil
}

// Checkpoint 读取同步断点
func (s *OrderStoreImpl) Checkpoint(ctx context.Context, scope string) (*etorder.SyncCheckpoint, error) {
	var state entity.SyncState
	err := s.db.WithContext(ctx).Where("scope = ?", scope).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errorx.Wrap(errorx.KindPersistence, "读取同步断点失败", err)
	}

	return &etorder.SyncCheckpoint{
		Scope:     state.Scope,
		Cursor:    state.Cursor,
		Stats:     []byte(state.Stats),
		UpdatedAt: state.UpdatedAt,
	}, nil
}

package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SyncState 同步断点（sync_state 表）
// 每页事务提交后更新游标，中止的轮次可以从这里续传
type SyncState struct {
	Scope     string         `gorm:"column:scope;primaryKey;type:varchar(32)"`
	Cursor    string         `gorm:"column:cursor;type:varchar(64)"`
	Stats     datatypes.JSON `gorm:"column:stats;type:json"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (SyncState) TableName() string {
	return "sync_state"
}

// Package model 定义排班校验引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentStatus 排班分配状态
type AssignmentStatus string

const (
	StatusAssigned  AssignmentStatus = "assigned"  // 已分配
	StatusConfirmed AssignmentStatus = "confirmed" // 已确认
	StatusCompleted AssignmentStatus = "completed" // 已完成
	StatusCancelled AssignmentStatus = "cancelled" // 已取消
)

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JSONMap 用于存储 JSONB 数据
type JSONMap map[string]interface{}

// TimeSlot 时间段（HH:MM 格式的起止时刻）
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains 检查某个时刻是否落在时间段内（闭区间）
func (ts TimeSlot) Contains(clock string) bool {
	return ts.Start <= clock && clock <= ts.End
}

// DateRange 日期范围
type DateRange struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// ContainsDate 检查日期是否落在范围内（闭区间）
func (dr DateRange) ContainsDate(date string) bool {
	return dr.StartDate <= date && date <= dr.EndDate
}

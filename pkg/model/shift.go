// Package model 定义排班校验引擎的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// Shift 班次
type Shift struct {
	BaseModel
	OrgID     uuid.UUID `json:"org_id" db:"org_id"`
	Name      string    `json:"name,omitempty" db:"name"`
	Date      string    `json:"date" db:"date"`             // YYYY-MM-DD
	StartTime string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime   string    `json:"end_time" db:"end_time"`     // HH:MM
	ShiftType string    `json:"shift_type" db:"shift_type"` // morning/afternoon/evening/night
}

// DurationHours 返回班次时长（小时），跨午夜班次自动修正
func (s *Shift) DurationHours() float64 {
	return DurationHours(s.StartTime, s.EndTime)
}

// IsOvertime 检查班次本身是否构成加班时长
func (s *Shift) IsOvertime() bool {
	return IsOvertimeShift(s.DurationHours())
}

// CrossesMidnight 检查班次是否跨越午夜
func (s *Shift) CrossesMidnight() bool {
	return s.EndTime < s.StartTime
}

// Assignment 排班分配：一个员工与一个班次的绑定
type Assignment struct {
	BaseModel
	EmployeeID uuid.UUID        `json:"employee_id" db:"employee_id"`
	Shift      Shift            `json:"shift" db:"-"`
	Status     AssignmentStatus `json:"status" db:"status"`
	Notes      string           `json:"notes,omitempty" db:"notes"`
}

// Counts 检查分配是否计入冲突/工时/连班/休息等聚合计算
// 只有 assigned 与 confirmed 状态参与计算，cancelled 被所有评估器忽略
func (a *Assignment) Counts() bool {
	return a.Status == StatusAssigned || a.Status == StatusConfirmed
}

// IsOnDate 检查分配是否在指定日期
func (a *Assignment) IsOnDate(date string) bool {
	return a.Shift.Date == date
}

// DurationHours 返回分配对应班次的时长（小时）
func (a *Assignment) DurationHours() float64 {
	return a.Shift.DurationHours()
}

// ScheduleEntry 已持久化的排班条目（供业务校验器使用的普通值对象）
// 与 Assignment 的区别：不携带完整班次对象，只保留校验所需的字段
type ScheduleEntry struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	EmployeeID uuid.UUID        `json:"employee_id" db:"employee_id"`
	Date       string           `json:"date" db:"date"`             // YYYY-MM-DD
	StartTime  string           `json:"start_time" db:"start_time"` // HH:MM
	EndTime    string           `json:"end_time" db:"end_time"`     // HH:MM
	ShiftType  string           `json:"shift_type,omitempty" db:"shift_type"`
	Status     AssignmentStatus `json:"status" db:"status"`
}

// DurationHours 返回条目时长（小时）
func (s *ScheduleEntry) DurationHours() float64 {
	return DurationHours(s.StartTime, s.EndTime)
}

// IsCancelled 检查条目是否已取消
func (s *ScheduleEntry) IsCancelled() bool {
	return s.Status == StatusCancelled
}

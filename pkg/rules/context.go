// Package rules 定义排班规则实体与规则评估引擎
package rules

import (
	"time"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// Context 规则评估上下文
// Assignments 为该员工除候选分配之外的既有分配快照，
// 评估过程只读，不持有锁，也不做任何 I/O
type Context struct {
	Employee    *model.Employee
	Assignments []*model.Assignment
	Now         time.Time
}

// NewContext 创建评估上下文
// candidateID 非零时会从既有分配中剔除同 ID 的记录（用于更新场景）
func NewContext(emp *model.Employee, assignments []*model.Assignment, candidateID uuid.UUID, now time.Time) *Context {
	filtered := make([]*model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if candidateID != uuid.Nil && a.ID == candidateID {
			continue
		}
		filtered = append(filtered, a)
	}
	return &Context{
		Employee:    emp,
		Assignments: filtered,
		Now:         now,
	}
}

// HoursOnDate 计算员工某天既有分配的总时长（小时）
// 只统计 assigned/confirmed 状态的分配
func (c *Context) HoursOnDate(date string) float64 {
	var hours float64
	for _, a := range c.Assignments {
		if a.Counts() && a.IsOnDate(date) {
			hours += a.DurationHours()
		}
	}
	return hours
}

// HoursInWeek 计算员工在 date 所在周（周一至周日）的既有分配总时长
func (c *Context) HoursInWeek(date string) float64 {
	weekStart := model.WeekStart(date)
	weekEnd := model.WeekEnd(date)

	var hours float64
	for _, a := range c.Assignments {
		if a.Counts() && a.Shift.Date >= weekStart && a.Shift.Date <= weekEnd {
			hours += a.DurationHours()
		}
	}
	return hours
}

// HasWorkOn 检查员工某天是否有生效分配
func (c *Context) HasWorkOn(date string) bool {
	for _, a := range c.Assignments {
		if a.Counts() && a.IsOnDate(date) {
			return true
		}
	}
	return false
}

// LatestEndOnDate 返回员工某天生效分配中最晚的下班时刻
// 第二个返回值表示当天是否存在生效分配
func (c *Context) LatestEndOnDate(date string) (string, bool) {
	var latest string
	found := false
	for _, a := range c.Assignments {
		if !a.Counts() || !a.IsOnDate(date) {
			continue
		}
		if !found || a.Shift.EndTime > latest {
			latest = a.Shift.EndTime
			found = true
		}
	}
	return latest, found
}

// Package rules 定义排班规则实体与规则评估引擎
package rules

import (
	"fmt"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// validateWorkload 评估工时上限规则
// 日工时与周工时各自独立检查，缺省的上限不检查；达到上限本身不算违规
func (r *Rule) validateWorkload(a *model.Assignment, ctx *Context) (bool, string) {
	c, ok := r.Constraints.(*WorkloadConstraints)
	if !ok || c == nil {
		return true, "No workload constraints configured"
	}

	newHours := a.Shift.DurationHours()

	if c.MaxDailyHours != nil {
		daily := ctx.HoursOnDate(a.Shift.Date) + newHours
		if daily > *c.MaxDailyHours {
			return false, fmt.Sprintf(
				"Daily hours %.1f would exceed maximum %.1f on %s",
				daily, *c.MaxDailyHours, a.Shift.Date,
			)
		}
	}

	if c.MaxWeeklyHours != nil {
		weekly := ctx.HoursInWeek(a.Shift.Date) + newHours
		if weekly > *c.MaxWeeklyHours {
			return false, fmt.Sprintf(
				"Weekly hours %.1f would exceed maximum %.1f for week starting %s",
				weekly, *c.MaxWeeklyHours, model.WeekStart(a.Shift.Date),
			)
		}
	}

	return true, "Workload check passed"
}

// validateOvertime 评估加班上限规则
// 以周一为起点统计当周既有工时，加上候选班次后超出标准周工时的部分为加班
func (r *Rule) validateOvertime(a *model.Assignment, ctx *Context) (bool, string) {
	c, ok := r.Constraints.(*OvertimeConstraints)
	if !ok || c == nil {
		return true, "No overtime constraints configured"
	}

	weekly := ctx.HoursInWeek(a.Shift.Date)
	overtime := weekly + a.Shift.DurationHours() - c.StandardWeeklyHours

	if overtime > c.MaxWeeklyOvertime {
		return false, fmt.Sprintf(
			"Overtime of %.1f hours would exceed allowed %.1f hours for week starting %s",
			overtime, c.MaxWeeklyOvertime, model.WeekStart(a.Shift.Date),
		)
	}

	return true, "Overtime check passed"
}

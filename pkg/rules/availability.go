// Package rules 定义排班规则实体与规则评估引擎
package rules

import (
	"fmt"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// validateAvailability 评估可用性规则
// 禁排星期直接拒绝；禁排时间窗按闭区间匹配班次开始时刻
func (r *Rule) validateAvailability(a *model.Assignment, ctx *Context) (bool, string) {
	c, ok := r.Constraints.(*AvailabilityConstraints)
	if !ok || c == nil {
		return true, "No availability constraints configured"
	}

	weekday := model.WeekdayName(a.Shift.Date)

	for _, restricted := range c.RestrictedDays {
		if weekday == restricted {
			return false, fmt.Sprintf("Employee is not available on %s", weekday)
		}
	}

	for _, tr := range c.TimeRestrictions[weekday] {
		// 边界时刻按受限处理
		if tr.Start <= a.Shift.StartTime && a.Shift.StartTime <= tr.End {
			if tr.Reason != "" {
				return false, fmt.Sprintf(
					"Shift start %s falls within restricted window %s-%s on %s: %s",
					a.Shift.StartTime, tr.Start, tr.End, weekday, tr.Reason,
				)
			}
			return false, fmt.Sprintf(
				"Shift start %s falls within restricted window %s-%s on %s",
				a.Shift.StartTime, tr.Start, tr.End, weekday,
			)
		}
	}

	return true, "Availability check passed"
}

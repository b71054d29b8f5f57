// Package rules 定义排班规则实体与规则评估引擎
package rules

import (
	"fmt"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// maxConsecutiveScan 连续天数扫描上限，防止异常数据导致长循环
const maxConsecutiveScan = 366

// validateConsecutiveDays 评估最大连续工作天数规则
// 从候选班次日期向前、向后逐日扫描有生效分配的日期，
// 候选当天本身计为 1 天
func (r *Rule) validateConsecutiveDays(a *model.Assignment, ctx *Context) (bool, string) {
	c, ok := r.Constraints.(*ConsecutiveDaysConstraints)
	if !ok || c == nil {
		return true, "No consecutive days constraints configured"
	}

	maxDays := c.MaxConsecutiveDays
	if maxDays <= 0 {
		maxDays = DefaultMaxConsecutiveDays
	}

	count := 1

	date := model.PreviousDate(a.Shift.Date)
	for i := 0; i < maxConsecutiveScan && ctx.HasWorkOn(date); i++ {
		count++
		date = model.PreviousDate(date)
	}

	date = model.NextDate(a.Shift.Date)
	for i := 0; i < maxConsecutiveScan && ctx.HasWorkOn(date); i++ {
		count++
		date = model.NextDate(date)
	}

	if count > maxDays {
		return false, fmt.Sprintf(
			"Would result in %d consecutive working days, exceeding maximum %d",
			count, maxDays,
		)
	}

	return true, "Consecutive days check passed"
}

// validateRestPeriod 评估班次间最小休息规则
// 只检查前一天的分配：取前一天最晚的下班时刻与候选班次开始时刻之间的间隔
// 注意：同日多班次的间隔不在本规则检查范围内，由业务校验器单独覆盖
func (r *Rule) validateRestPeriod(a *model.Assignment, ctx *Context) (bool, string) {
	c, ok := r.Constraints.(*RestPeriodConstraints)
	if !ok || c == nil {
		return true, "No rest period constraints configured"
	}

	minRest := c.MinRestHours
	if minRest <= 0 {
		minRest = DefaultMinRestHours
	}

	prevDate := model.PreviousDate(a.Shift.Date)
	latestEnd, found := ctx.LatestEndOnDate(prevDate)
	if !found {
		return true, "Rest period check passed"
	}

	prevEnd, err := model.CombineDateTime(prevDate, latestEnd)
	if err != nil {
		return true, "Rest period check skipped: invalid previous shift time"
	}
	newStart, err := model.CombineDateTime(a.Shift.Date, a.Shift.StartTime)
	if err != nil {
		return true, "Rest period check skipped: invalid shift time"
	}

	gap := newStart.Sub(prevEnd).Hours()
	if gap < minRest {
		return false, fmt.Sprintf(
			"Only %.1f hours of rest since previous shift, minimum is %.1f",
			gap, minRest,
		)
	}

	return true, "Rest period check passed"
}

// Package rules 定义排班规则实体与规则评估引擎
package rules

import (
	"fmt"
	"strings"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// validateQualification 评估资质要求规则
// 列出全部缺失资质，而不是只报第一个
func (r *Rule) validateQualification(a *model.Assignment, ctx *Context) (bool, string) {
	c, ok := r.Constraints.(*QualificationConstraints)
	if !ok || c == nil || len(c.RequiredQualifications) == 0 {
		return true, "No qualification constraints configured"
	}

	missing := ctx.Employee.MissingQualifications(c.RequiredQualifications)
	if len(missing) > 0 {
		return false, fmt.Sprintf("Missing required qualifications: %s", quotedList(missing))
	}

	return true, "Qualification check passed"
}

// validatePreference 评估班次偏好规则
// 非严格偏好只做记录，从不阻断；严格偏好要求班次类型落在偏好列表内
func (r *Rule) validatePreference(a *model.Assignment, ctx *Context) (bool, string) {
	if !r.Strict {
		return true, "Preference noted (non-strict)"
	}

	c, ok := r.Constraints.(*PreferenceConstraints)
	if !ok || c == nil || len(c.PreferredShiftTypes) == 0 {
		return true, "No preference constraints configured"
	}

	for _, preferred := range c.PreferredShiftTypes {
		if a.Shift.ShiftType == preferred {
			return true, "Preference check passed"
		}
	}

	return false, fmt.Sprintf(
		"Shift type '%s' is not among preferred types %s",
		a.Shift.ShiftType, quotedList(c.PreferredShiftTypes),
	)
}

// validateRestriction 评估禁排规则
func (r *Rule) validateRestriction(a *model.Assignment, ctx *Context) (bool, string) {
	c, ok := r.Constraints.(*RestrictionConstraints)
	if !ok || c == nil {
		return true, "No restriction constraints configured"
	}

	for _, forbidden := range c.ForbiddenShiftTypes {
		if a.Shift.ShiftType == forbidden {
			return false, fmt.Sprintf("Shift type '%s' is forbidden", a.Shift.ShiftType)
		}
	}

	for _, forbidden := range c.ForbiddenDates {
		if a.Shift.Date == forbidden {
			return false, fmt.Sprintf("Date %s is forbidden for scheduling", a.Shift.Date)
		}
	}

	return true, "Restriction check passed"
}

// quotedList 将字符串列表格式化为 ['a', 'b'] 形式
// 与管理后台展示的资质列表格式保持一致
func quotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

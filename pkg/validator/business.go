// Package validator 提供排班创建前的业务规则校验
//
// 与 pkg/rules 的规则引擎是两条独立的代码路径：这里的函数是无状态的
// 快速前置检查，在持久化事务构建之前执行，操作的是普通值对象而非
// 数据库加载的规则记录
package validator

import (
	"strings"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/errors"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// DefaultMinimumRestHours 班次间最小休息的默认小时数
const DefaultMinimumRestHours = 8.0

// 可用时间窗默认边界
const (
	defaultAvailableStart = "00:00"
	defaultAvailableEnd   = "23:59"
)

// ValidateScheduleConflicts 检查候选班次与员工既有排班的时间冲突
// 重叠判定为半开区间：new_start < existing_end 且 new_end > existing_start，
// 首个冲突即返回错误；cancelled 状态与 excludeID 对应的条目不参与判定
func ValidateScheduleConflicts(
	employeeID uuid.UUID,
	shiftDate, shiftStart, shiftEnd string,
	existing []*model.ScheduleEntry,
	excludeID *uuid.UUID,
) error {
	for _, entry := range existing {
		if entry.EmployeeID != employeeID || entry.Date != shiftDate {
			continue
		}
		if entry.IsCancelled() {
			continue
		}
		if excludeID != nil && entry.ID == *excludeID {
			continue
		}

		if shiftStart < entry.EndTime && shiftEnd > entry.StartTime {
			return errors.Validationf(errors.FieldScheduleConflict,
				"Schedule conflicts with an existing shift from %s to %s on %s",
				entry.StartTime, entry.EndTime, entry.Date,
			)
		}
	}
	return nil
}

// ValidateEmployeeQualifications 检查员工是否具备全部所需资质
// 报告所有缺失项，而不是只报第一个
func ValidateEmployeeQualifications(employeeQuals, requiredQuals []string) error {
	have := make(map[string]bool, len(employeeQuals))
	for _, q := range employeeQuals {
		have[q] = true
	}

	var missing []string
	for _, q := range requiredQuals {
		if !have[q] {
			missing = append(missing, q)
		}
	}

	if len(missing) > 0 {
		return errors.Validationf(errors.FieldQualifications,
			"Employee lacks required qualifications: %s",
			strings.Join(missing, ", "),
		)
	}
	return nil
}

// ValidateEmployeeAvailability 检查班次是否完整落在员工当日可用时间窗内
// 未配置该星期视为通过（宽松默认）；available 为 false 直接拒绝；
// 起止边界缺省时按 00:00-23:59 处理
func ValidateEmployeeAvailability(
	availability model.WeekAvailability,
	shiftDate, shiftStart, shiftEnd string,
) error {
	weekday := model.WeekdayName(shiftDate)

	day, configured := availability.AvailabilityOn(weekday)
	if !configured {
		return nil
	}

	if !day.Available {
		return errors.Validationf(errors.FieldAvailability,
			"Employee is not available on %s", weekday,
		)
	}

	availStart := day.Start
	if availStart == "" {
		availStart = defaultAvailableStart
	}
	availEnd := day.End
	if availEnd == "" {
		availEnd = defaultAvailableEnd
	}

	if shiftStart < availStart || shiftEnd > availEnd {
		return errors.Validationf(errors.FieldAvailability,
			"Shift %s-%s is outside the available window %s-%s on %s",
			shiftStart, shiftEnd, availStart, availEnd, weekday,
		)
	}
	return nil
}

// ValidateMaxHoursConstraint 检查加上新班次后的周工时是否超出上限
// 统计窗口为 [weekStart, weekEnd] 闭区间内同员工的非取消排班
func ValidateMaxHoursConstraint(
	employeeID uuid.UUID,
	weekStart, weekEnd string,
	newShiftHours, maxHoursPerWeek float64,
	existing []*model.ScheduleEntry,
	excludeID *uuid.UUID,
) error {
	total := newShiftHours
	for _, entry := range existing {
		if entry.EmployeeID != employeeID || entry.IsCancelled() {
			continue
		}
		if excludeID != nil && entry.ID == *excludeID {
			continue
		}
		if entry.Date >= weekStart && entry.Date <= weekEnd {
			total += entry.DurationHours()
		}
	}

	if total > maxHoursPerWeek {
		return errors.Validationf(errors.FieldMaxHours,
			"Total weekly hours %.1f would exceed the maximum of %.1f",
			total, maxHoursPerWeek,
		)
	}
	return nil
}

// ValidateMinimumRestPeriod 检查候选班次与员工所有其他排班之间的休息间隔
// 与规则引擎的 rest_period（只看前一天）不同，这里对任意日期的排班做
// 双向检查：既有班次结束到新班次开始、新班次结束到既有班次开始，
// 任一方向间隔非负且小于最小休息时长即拒绝
func ValidateMinimumRestPeriod(
	employeeID uuid.UUID,
	shiftDate, shiftStart, shiftEnd string,
	existing []*model.ScheduleEntry,
	minimumRestHours float64,
	excludeID *uuid.UUID,
) error {
	if minimumRestHours <= 0 {
		minimumRestHours = DefaultMinimumRestHours
	}

	newStart, err := model.CombineDateTime(shiftDate, shiftStart)
	if err != nil {
		return errors.Validationf(errors.FieldRestPeriod, "Invalid shift start time %q", shiftStart)
	}
	newEnd, err := model.CombineDateTime(shiftDate, shiftEnd)
	if err != nil {
		return errors.Validationf(errors.FieldRestPeriod, "Invalid shift end time %q", shiftEnd)
	}

	for _, entry := range existing {
		if entry.EmployeeID != employeeID || entry.IsCancelled() {
			continue
		}
		if excludeID != nil && entry.ID == *excludeID {
			continue
		}

		existingStart, err := model.CombineDateTime(entry.Date, entry.StartTime)
		if err != nil {
			continue
		}
		existingEnd, err := model.CombineDateTime(entry.Date, entry.EndTime)
		if err != nil {
			continue
		}

		// 既有班次在前
		gapBefore := newStart.Sub(existingEnd).Hours()
		if gapBefore >= 0 && gapBefore < minimumRestHours {
			return errors.Validationf(errors.FieldRestPeriod,
				"Only %.1f hours of rest after the shift ending %s on %s, minimum is %.1f",
				gapBefore, entry.EndTime, entry.Date, minimumRestHours,
			)
		}

		// 既有班次在后
		gapAfter := existingStart.Sub(newEnd).Hours()
		if gapAfter >= 0 && gapAfter < minimumRestHours {
			return errors.Validationf(errors.FieldRestPeriod,
				"Only %.1f hours of rest before the shift starting %s on %s, minimum is %.1f",
				gapAfter, entry.StartTime, entry.Date, minimumRestHours,
			)
		}
	}
	return nil
}

// ValidateAvailabilityPattern 校验可用性模式本身的合法性（录入时使用）
// 至少一天 available，时间段起止完整且 start < end
func ValidateAvailabilityPattern(availability model.WeekAvailability) error {
	if !availability.HasAvailableDay() {
		return errors.Validation(errors.FieldAvailability,
			"Availability pattern must have at least one available day",
		)
	}

	for weekday, day := range availability {
		for _, slot := range day.TimeSlots {
			if slot.Start == "" || slot.End == "" {
				return errors.Validationf(errors.FieldAvailability,
					"Time slot on %s is missing a start or end time", weekday,
				)
			}
			if slot.Start >= slot.End {
				return errors.Validationf(errors.FieldAvailability,
					"Time slot %s-%s on %s has a non-positive duration", slot.Start, slot.End, weekday,
				)
			}
		}
	}
	return nil
}

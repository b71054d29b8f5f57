// Package rules 定义排班规则实体与规则评估引擎
package rules

import (
	"fmt"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// Constraints 规则约束参数
// 每种规则类型对应一个强类型变体，在规则构造期从 JSON map 解码，
// 避免每次评估时重新解释无类型数据
type Constraints interface {
	ConstraintType() Type
}

// TimeRestriction 某个星期内的禁排时间窗（闭区间）
type TimeRestriction struct {
	Start  string `json:"start"` // HH:MM
	End    string `json:"end"`   // HH:MM
	Reason string `json:"reason,omitempty"`
}

// AvailabilityConstraints 可用性规则约束
type AvailabilityConstraints struct {
	RestrictedDays   []string                     `json:"restricted_days,omitempty"`
	TimeRestrictions map[string][]TimeRestriction `json:"time_restrictions,omitempty"`
}

// ConstraintType 返回所属规则类型
func (c *AvailabilityConstraints) ConstraintType() Type { return TypeAvailability }

// WorkloadConstraints 工时上限约束
// 缺省的上限字段表示不启用对应窗口的检查
type WorkloadConstraints struct {
	MaxDailyHours  *float64 `json:"max_daily_hours,omitempty"`
	MaxWeeklyHours *float64 `json:"max_weekly_hours,omitempty"`
}

// ConstraintType 返回所属规则类型
func (c *WorkloadConstraints) ConstraintType() Type { return TypeWorkload }

// QualificationConstraints 资质要求约束
type QualificationConstraints struct {
	RequiredQualifications []string `json:"required_qualifications,omitempty"`
}

// ConstraintType 返回所属规则类型
func (c *QualificationConstraints) ConstraintType() Type { return TypeQualification }

// PreferenceConstraints 班次偏好约束
type PreferenceConstraints struct {
	PreferredShiftTypes []string `json:"preferred_shift_types,omitempty"`
}

// ConstraintType 返回所属规则类型
func (c *PreferenceConstraints) ConstraintType() Type { return TypePreference }

// RestrictionConstraints 禁排约束
type RestrictionConstraints struct {
	ForbiddenShiftTypes []string `json:"forbidden_shift_types,omitempty"`
	ForbiddenDates      []string `json:"forbidden_dates,omitempty"`
}

// ConstraintType 返回所属规则类型
func (c *RestrictionConstraints) ConstraintType() Type { return TypeRestriction }

// OvertimeConstraints 加班上限约束
type OvertimeConstraints struct {
	StandardWeeklyHours float64 `json:"standard_weekly_hours"`
	MaxWeeklyOvertime   float64 `json:"max_weekly_overtime"`
}

// ConstraintType 返回所属规则类型
func (c *OvertimeConstraints) ConstraintType() Type { return TypeOvertime }

// ConsecutiveDaysConstraints 最大连续工作天数约束
type ConsecutiveDaysConstraints struct {
	MaxConsecutiveDays int `json:"max_consecutive_days"`
}

// ConstraintType 返回所属规则类型
func (c *ConsecutiveDaysConstraints) ConstraintType() Type { return TypeConsecutiveDays }

// RestPeriodConstraints 班次间最小休息约束
type RestPeriodConstraints struct {
	MinRestHours float64 `json:"min_rest_hours"`
}

// ConstraintType 返回所属规则类型
func (c *RestPeriodConstraints) ConstraintType() Type { return TypeRestPeriod }

// 约束参数默认值
const (
	DefaultStandardWeeklyHours = 40.0
	DefaultMaxWeeklyOvertime   = 0.0
	DefaultMaxConsecutiveDays  = 7
	DefaultMinRestHours        = 8.0
)

// DecodeConstraints 根据规则类型将 JSON map 解码为强类型约束
// 未知规则类型返回 nil 约束且不报错
func DecodeConstraints(t Type, raw model.JSONMap) (Constraints, error) {
	switch t {
	case TypeAvailability:
		return decodeAvailability(raw)
	case TypeWorkload:
		return &WorkloadConstraints{
			MaxDailyHours:  mapFloatPtr(raw, "max_daily_hours"),
			MaxWeeklyHours: mapFloatPtr(raw, "max_weekly_hours"),
		}, nil
	case TypeQualification:
		return &QualificationConstraints{
			RequiredQualifications: mapStringSlice(raw, "required_qualifications"),
		}, nil
	case TypePreference:
		return &PreferenceConstraints{
			PreferredShiftTypes: mapStringSlice(raw, "preferred_shift_types"),
		}, nil
	case TypeRestriction:
		return &RestrictionConstraints{
			ForbiddenShiftTypes: mapStringSlice(raw, "forbidden_shift_types"),
			ForbiddenDates:      mapStringSlice(raw, "forbidden_dates"),
		}, nil
	case TypeOvertime:
		return &OvertimeConstraints{
			StandardWeeklyHours: mapFloat(raw, "standard_weekly_hours", DefaultStandardWeeklyHours),
			MaxWeeklyOvertime:   mapFloat(raw, "max_weekly_overtime", DefaultMaxWeeklyOvertime),
		}, nil
	case TypeConsecutiveDays:
		return &ConsecutiveDaysConstraints{
			MaxConsecutiveDays: mapInt(raw, "max_consecutive_days", DefaultMaxConsecutiveDays),
		}, nil
	case TypeRestPeriod:
		return &RestPeriodConstraints{
			MinRestHours: mapFloat(raw, "min_rest_hours", DefaultMinRestHours),
		}, nil
	default:
		return nil, nil
	}
}

// decodeAvailability 解码可用性约束（含嵌套的时间窗结构）
func decodeAvailability(raw model.JSONMap) (*AvailabilityConstraints, error) {
	c := &AvailabilityConstraints{
		RestrictedDays: mapStringSlice(raw, "restricted_days"),
	}

	val, ok := raw["time_restrictions"]
	if !ok || val == nil {
		return c, nil
	}

	byDay, ok := val.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("time_restrictions 不是对象结构")
	}

	c.TimeRestrictions = make(map[string][]TimeRestriction, len(byDay))
	for weekday, entry := range byDay {
		items, ok := entry.([]interface{})
		if !ok {
			return nil, fmt.Errorf("time_restrictions[%s] 不是数组结构", weekday)
		}
		restrictions := make([]TimeRestriction, 0, len(items))
		for _, item := range items {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("time_restrictions[%s] 包含非对象元素", weekday)
			}
			restrictions = append(restrictions, TimeRestriction{
				Start:  stringValue(m["start"]),
				End:    stringValue(m["end"]),
				Reason: stringValue(m["reason"]),
			})
		}
		c.TimeRestrictions[weekday] = restrictions
	}

	return c, nil
}

// 以下辅助函数容忍 JSON 解码产生的类型差异（int/float64/[]interface{}）

func mapFloat(raw model.JSONMap, key string, defaultVal float64) float64 {
	if raw == nil {
		return defaultVal
	}
	switch v := raw[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return defaultVal
}

func mapFloatPtr(raw model.JSONMap, key string) *float64 {
	if raw == nil {
		return nil
	}
	if _, ok := raw[key]; !ok {
		return nil
	}
	v := mapFloat(raw, key, 0)
	return &v
}

func mapInt(raw model.JSONMap, key string, defaultVal int) int {
	if raw == nil {
		return defaultVal
	}
	switch v := raw[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultVal
}

func mapStringSlice(raw model.JSONMap, key string) []string {
	if raw == nil {
		return nil
	}
	switch v := raw[key].(type) {
	case []string:
		return v
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

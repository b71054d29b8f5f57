// Package rules 定义排班规则实体与规则评估引擎
package rules

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// Type 规则类型标识
type Type string

const (
	TypeAvailability    Type = "availability"     // 可用性限制
	TypeWorkload        Type = "workload"         // 工时上限
	TypeQualification   Type = "qualification"    // 资质要求
	TypePreference      Type = "preference"       // 班次偏好
	TypeRestriction     Type = "restriction"      // 班次/日期禁排
	TypeOvertime        Type = "overtime"         // 加班上限
	TypeConsecutiveDays Type = "consecutive_days" // 最大连续工作天数
	TypeRestPeriod      Type = "rest_period"      // 班次间最小休息
)

// KnownTypes 返回引擎支持的全部规则类型
func KnownTypes() []Type {
	return []Type{
		TypeAvailability,
		TypeWorkload,
		TypeQualification,
		TypePreference,
		TypeRestriction,
		TypeOvertime,
		TypeConsecutiveDays,
		TypeRestPeriod,
	}
}

// IsKnownType 检查规则类型是否受支持
func IsKnownType(t Type) bool {
	for _, known := range KnownTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Rule 一条已配置的排班约束
// EmployeeID 为 nil 时表示全局规则，对所有员工生效
type Rule struct {
	ID             int64       `json:"id" db:"id"`
	RuleType       Type        `json:"rule_type" db:"rule_type"`
	Name           string      `json:"name,omitempty" db:"name"`
	Description    string      `json:"description,omitempty" db:"description"`
	EmployeeID     *uuid.UUID  `json:"employee_id,omitempty" db:"employee_id"`
	Constraints    Constraints `json:"constraints,omitempty" db:"-"`
	Priority       int         `json:"priority" db:"priority"` // 1-10
	Active         bool        `json:"active" db:"active"`
	Strict         bool        `json:"strict" db:"strict"`
	EffectiveFrom  *time.Time  `json:"effective_from,omitempty" db:"effective_from"`
	EffectiveUntil *time.Time  `json:"effective_until,omitempty" db:"effective_until"`
	ViolationCount int         `json:"violation_count" db:"violation_count"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// NewRule 创建规则并在构造期解码约束参数
// 未知规则类型不报错，校验时走放行分支
func NewRule(id int64, ruleType Type, raw model.JSONMap) (*Rule, error) {
	constraints, err := DecodeConstraints(ruleType, raw)
	if err != nil {
		return nil, err
	}
	return &Rule{
		ID:          id,
		RuleType:    ruleType,
		Constraints: constraints,
		Priority:    5,
		Active:      true,
	}, nil
}

// IsGlobal 检查规则是否为全局规则
func (r *Rule) IsGlobal() bool {
	return r.EmployeeID == nil
}

// AppliesToEmployee 检查规则是否适用于某员工
func (r *Rule) AppliesToEmployee(employeeID uuid.UUID) bool {
	if r.EmployeeID == nil {
		return true
	}
	return *r.EmployeeID == employeeID
}

// IsEffective 检查规则当前是否生效
// active 且处于 [effective_from, effective_until] 窗口内
func (r *Rule) IsEffective(now time.Time) bool {
	if !r.Active {
		return false
	}
	if r.EffectiveFrom != nil && now.Before(*r.EffectiveFrom) {
		return false
	}
	if r.EffectiveUntil != nil && now.After(*r.EffectiveUntil) {
		return false
	}
	return true
}

// Validate 评估候选分配是否违反本规则
// 返回 (是否通过, 说明信息)；评估是纯函数，违规计数由调用方记录
func (r *Rule) Validate(a *model.Assignment, ctx *Context) (bool, string) {
	if !r.IsEffective(ctx.Now) || !r.AppliesToEmployee(a.EmployeeID) {
		return true, "Rule not applicable"
	}

	switch r.RuleType {
	case TypeAvailability:
		return r.validateAvailability(a, ctx)
	case TypeWorkload:
		return r.validateWorkload(a, ctx)
	case TypeQualification:
		return r.validateQualification(a, ctx)
	case TypePreference:
		return r.validatePreference(a, ctx)
	case TypeRestriction:
		return r.validateRestriction(a, ctx)
	case TypeOvertime:
		return r.validateOvertime(a, ctx)
	case TypeConsecutiveDays:
		return r.validateConsecutiveDays(a, ctx)
	case TypeRestPeriod:
		return r.validateRestPeriod(a, ctx)
	default:
		// 未知类型始终放行，兼容实验性/已下线的规则类型
		return true, fmt.Sprintf("Unknown rule type: %s", r.RuleType)
	}
}

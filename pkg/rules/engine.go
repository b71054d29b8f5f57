// Package rules 定义排班规则实体与规则评估引擎
package rules

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/logger"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// Violation 一次规则违反
type Violation struct {
	RuleID   int64  `json:"rule_id"`
	RuleType Type   `json:"rule_type"`
	Strict   bool   `json:"strict"`
	Priority int    `json:"priority"`
	Message  string `json:"message"`
}

// Decision 规则集评估结论
// 任一严格规则失败即整体拒绝，拒绝理由取第一条严格失败的消息；
// 软违规不阻断，由调用方逐条递增规则的违规计数
type Decision struct {
	Accepted         bool        `json:"accepted"`
	Reason           string      `json:"reason,omitempty"`
	ViolatedRuleID   *int64      `json:"violated_rule_id,omitempty"`
	StrictViolations []Violation `json:"strict_violations,omitempty"`
	SoftViolations   []Violation `json:"soft_violations,omitempty"`
}

// Violations 返回全部违规（严格在前，各自保持评估顺序）
func (d *Decision) Violations() []Violation {
	out := make([]Violation, 0, len(d.StrictViolations)+len(d.SoftViolations))
	out = append(out, d.StrictViolations...)
	out = append(out, d.SoftViolations...)
	return out
}

// Engine 规则集评估引擎
// 评估本身是纯计算，Engine 只附加日志，可安全地在一个事务内反复调用
type Engine struct {
	logger *logger.EngineLogger
}

// NewEngine 创建规则评估引擎
func NewEngine() *Engine {
	return &Engine{
		logger: logger.NewEngineLogger(),
	}
}

// Evaluate 对候选分配评估全部适用规则
// existing 为该员工的既有分配（可包含候选自身，会按 ID 剔除）；
// 规则按 ID 升序评估，保证结论与拒绝理由可复现
func (e *Engine) Evaluate(
	emp *model.Employee,
	ruleSet []*Rule,
	a *model.Assignment,
	existing []*model.Assignment,
	now time.Time,
) *Decision {
	start := time.Now()
	ctx := NewContext(emp, existing, a.ID, now)

	ordered := make([]*Rule, len(ruleSet))
	copy(ordered, ruleSet)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	e.logger.StartEvaluation(emp.ID.String(), len(ordered))

	decision := &Decision{Accepted: true}

	for _, r := range ordered {
		valid, message := r.Validate(a, ctx)
		if valid {
			continue
		}

		v := Violation{
			RuleID:   r.ID,
			RuleType: r.RuleType,
			Strict:   r.Strict,
			Priority: r.Priority,
			Message:  message,
		}
		e.logger.RuleViolation(r.ID, string(r.RuleType), message, r.Strict)

		if r.Strict {
			if decision.Accepted {
				// 第一条严格失败决定拒绝理由
				decision.Accepted = false
				decision.Reason = message
				id := r.ID
				decision.ViolatedRuleID = &id
			}
			decision.StrictViolations = append(decision.StrictViolations, v)
		} else {
			decision.SoftViolations = append(decision.SoftViolations, v)
		}
	}

	e.logger.Decision(emp.ID.String(), decision.Accepted, len(decision.SoftViolations), time.Since(start))

	return decision
}

// ApplicableRules 过滤出对某员工生效且适用的规则（ID 升序）
func ApplicableRules(ruleSet []*Rule, employeeID uuid.UUID, now time.Time) []*Rule {
	var out []*Rule
	for _, r := range ruleSet {
		if r.IsEffective(now) && r.AppliesToEmployee(employeeID) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

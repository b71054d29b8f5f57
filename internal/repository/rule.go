// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/rules"
)

// RuleRepository 规则仓储
type RuleRepository struct {
	db DB
}

// NewRuleRepository 创建规则仓储
func NewRuleRepository(db DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// Create 创建规则
func (r *RuleRepository) Create(ctx context.Context, rule *rules.Rule) error {
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	constraintsJSON, err := json.Marshal(rule.Constraints)
	if err != nil {
		return fmt.Errorf("序列化规则约束失败: %w", err)
	}

	query := `
		INSERT INTO rules (
			rule_type, name, description, employee_id, constraints,
			priority, active, strict, effective_from, effective_until,
			violation_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err = r.db.QueryRowContext(ctx, query,
		rule.RuleType, rule.Name, rule.Description, rule.EmployeeID, constraintsJSON,
		rule.Priority, rule.Active, rule.Strict, rule.EffectiveFrom, rule.EffectiveUntil,
		rule.ViolationCount, rule.CreatedAt, rule.UpdatedAt,
	).Scan(&rule.ID)
	if err != nil {
		return fmt.Errorf("创建规则失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取规则
func (r *RuleRepository) GetByID(ctx context.Context, id int64) (*rules.Rule, error) {
	query := `
		SELECT id, rule_type, name, description, employee_id, constraints,
			priority, active, strict, effective_from, effective_until,
			violation_count, created_at, updated_at
		FROM rules
		WHERE id = $1
	`

	return r.scanRule(r.db.QueryRowContext(ctx, query, id))
}

// Update 更新规则
func (r *RuleRepository) Update(ctx context.Context, rule *rules.Rule) error {
	rule.UpdatedAt = time.Now()

	constraintsJSON, err := json.Marshal(rule.Constraints)
	if err != nil {
		return fmt.Errorf("序列化规则约束失败: %w", err)
	}

	query := `
		UPDATE rules SET
			rule_type = $2, name = $3, description = $4, employee_id = $5, constraints = $6,
			priority = $7, active = $8, strict = $9, effective_from = $10, effective_until = $11,
			updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.RuleType, rule.Name, rule.Description, rule.EmployeeID, constraintsJSON,
		rule.Priority, rule.Active, rule.Strict, rule.EffectiveFrom, rule.EffectiveUntil,
		rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新规则失败: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("规则不存在")
	}

	return nil
}

// Delete 删除规则
func (r *RuleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("删除规则失败: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("规则不存在")
	}

	return nil
}

// List 查询规则列表
func (r *RuleRepository) List(ctx context.Context, filter ListFilter) ([]*rules.Rule, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "1=1")

	if filter.RuleType != "" {
		conditions = append(conditions, fmt.Sprintf("rule_type = $%d", argIndex))
		args = append(args, filter.RuleType)
		argIndex++
	}

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("(employee_id IS NULL OR employee_id = $%d)", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}

	if filter.Status == "active" {
		conditions = append(conditions, "active = true")
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM rules WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("查询总数失败: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, rule_type, name, description, employee_id, constraints,
			priority, active, strict, effective_from, effective_until,
			violation_count, created_at, updated_at
		FROM rules
		WHERE %s
		ORDER BY id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("查询规则列表失败: %w", err)
	}
	defer rows.Close()

	var result []*rules.Rule
	for rows.Next() {
		rule, err := r.scanRuleRow(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, rule)
	}

	return result, total, nil
}

// ListForEmployee 获取适用于员工的全部激活规则（全局规则与员工专属规则）
func (r *RuleRepository) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*rules.Rule, error) {
	filter := DefaultListFilter().WithEmployeeID(employeeID).WithStatus("active").WithLimit(10000)
	result, _, err := r.List(ctx, filter)
	return result, err
}

// RecordViolation 记录一次规则违反，违规计数加一
func (r *RuleRepository) RecordViolation(ctx context.Context, id int64) (int, error) {
	query := `
		UPDATE rules SET violation_count = violation_count + 1, updated_at = $2
		WHERE id = $1
		RETURNING violation_count
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, id, time.Now()).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("规则不存在")
	}
	if err != nil {
		return 0, fmt.Errorf("记录规则违反失败: %w", err)
	}

	return count, nil
}

// scanRule 扫描单行规则数据
func (r *RuleRepository) scanRule(row *sql.Row) (*rules.Rule, error) {
	return r.scanFrom(row)
}

// scanRuleRow 扫描Rows中的规则数据
func (r *RuleRepository) scanRuleRow(rows *sql.Rows) (*rules.Rule, error) {
	return r.scanFrom(rows)
}

// scanFrom 从行扫描并解码约束
func (r *RuleRepository) scanFrom(s Scanner) (*rules.Rule, error) {
	rule := &rules.Rule{}
	var constraintsJSON []byte
	var employeeID *uuid.UUID

	err := s.Scan(
		&rule.ID, &rule.RuleType, &rule.Name, &rule.Description, &employeeID, &constraintsJSON,
		&rule.Priority, &rule.Active, &rule.Strict, &rule.EffectiveFrom, &rule.EffectiveUntil,
		&rule.ViolationCount, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描规则数据失败: %w", err)
	}
	rule.EmployeeID = employeeID

	var raw model.JSONMap
	if len(constraintsJSON) > 0 {
		if err := json.Unmarshal(constraintsJSON, &raw); err != nil {
			return nil, fmt.Errorf("解析规则约束失败: %w", err)
		}
	}

	constraints, err := rules.DecodeConstraints(rule.RuleType, raw)
	if err != nil {
		return nil, fmt.Errorf("解码规则约束失败 (rule=%d): %w", rule.ID, err)
	}
	rule.Constraints = constraints

	return rule, nil
}

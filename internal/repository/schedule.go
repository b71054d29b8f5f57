// Package repository 提供数据访问层
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// ScheduleRepository 排班条目仓储
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository 创建排班条目仓储
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create 创建排班条目
func (r *ScheduleRepository) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Status == "" {
		entry.Status = model.StatusAssigned
	}

	query := `
		INSERT INTO schedule_entries (
			id, employee_id, date, start_time, end_time, shift_type, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.EmployeeID, entry.Date, entry.StartTime, entry.EndTime,
		entry.ShiftType, entry.Status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("创建排班条目失败: %w", err)
	}

	return nil
}

// UpdateStatus 更新排班条目状态
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AssignmentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE schedule_entries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("更新排班状态失败: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("排班条目不存在")
	}

	return nil
}

// ListByEmployee 获取员工的排班条目，默认排除已取消条目
func (r *ScheduleRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, filter ListFilter) ([]*model.ScheduleEntry, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIndex))
	args = append(args, employeeID)
	argIndex++

	conditions = append(conditions, fmt.Sprintf("status <> $%d", argIndex))
	args = append(args, model.StatusCancelled)
	argIndex++

	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIndex))
		args = append(args, filter.StartDate)
		argIndex++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIndex))
		args = append(args, filter.EndDate)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT id, employee_id, date, start_time, end_time, shift_type, status
		FROM schedule_entries
		WHERE %s
		ORDER BY date ASC, start_time ASC
	`, strings.Join(conditions, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询排班条目失败: %w", err)
	}
	defer rows.Close()

	var entries []*model.ScheduleEntry
	for rows.Next() {
		entry := &model.ScheduleEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.Date, &entry.StartTime,
			&entry.EndTime, &entry.ShiftType, &entry.Status,
		); err != nil {
			return nil, fmt.Errorf("扫描排班条目失败: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ListByDateRange 获取日期范围内的全部排班条目（供整表冲突检测使用）
func (r *ScheduleRepository) ListByDateRange(ctx context.Context, start, end string) ([]*model.ScheduleEntry, error) {
	query := `
		SELECT id, employee_id, date, start_time, end_time, shift_type, status
		FROM schedule_entries
		WHERE date >= $1 AND date <= $2 AND status <> $3
		ORDER BY employee_id, date ASC, start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start, end, model.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("查询排班条目失败: %w", err)
	}
	defer rows.Close()

	var entries []*model.ScheduleEntry
	for rows.Next() {
		entry := &model.ScheduleEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.Date, &entry.StartTime,
			&entry.EndTime, &entry.ShiftType, &entry.Status,
		); err != nil {
			return nil, fmt.Errorf("扫描排班条目失败: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ListAssignmentsByEmployee 获取员工的分配记录（供规则引擎上下文使用）
func (r *ScheduleRepository) ListAssignmentsByEmployee(ctx context.Context, employeeID uuid.UUID, filter ListFilter) ([]*model.Assignment, error) {
	entries, err := r.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, err
	}

	assignments := make([]*model.Assignment, 0, len(entries))
	for _, entry := range entries {
		a := &model.Assignment{
			EmployeeID: entry.EmployeeID,
			Status:     entry.Status,
			Shift: model.Shift{
				Date:      entry.Date,
				StartTime: entry.StartTime,
				EndTime:   entry.EndTime,
				ShiftType: entry.ShiftType,
			},
		}
		a.ID = entry.ID
		assignments = append(assignments, a)
	}

	return assignments, nil
}

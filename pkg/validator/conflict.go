// Package validator 提供排班创建前的业务规则校验
package validator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// ConflictType 冲突类型
type ConflictType string

const (
	ConflictOverlap  ConflictType = "overlap"   // 时间重叠
	ConflictRestTime ConflictType = "rest_time" // 休息时间不足
	ConflictMaxHours ConflictType = "max_hours" // 超过最大周工时
)

// Conflict 冲突信息
type Conflict struct {
	Type       ConflictType `json:"type"`
	EmployeeID uuid.UUID    `json:"employee_id"`
	Date       string       `json:"date,omitempty"`
	Message    string       `json:"message"`
	Entries    []uuid.UUID  `json:"entries,omitempty"` // 相关的排班条目ID
}

// DetectorConfig 检测器配置
type DetectorConfig struct {
	MinRestHours    float64 // 班次间最小休息时间（小时）
	MaxHoursPerWeek float64 // 每周最大工时，0 表示不检查
}

// DefaultDetectorConfig 返回默认配置
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		MinRestHours:    DefaultMinimumRestHours,
		MaxHoursPerWeek: 0,
	}
}

// ConflictDetector 整表冲突检测器
// 对一份完整排班计划做全量扫描，复用单条校验的判定语义
type ConflictDetector struct {
	config *DetectorConfig
}

// NewConflictDetector 创建冲突检测器
func NewConflictDetector(config *DetectorConfig) *ConflictDetector {
	if config == nil {
		config = DefaultDetectorConfig()
	}
	return &ConflictDetector{config: config}
}

// DetectAll 检测排班计划中的所有冲突
func (d *ConflictDetector) DetectAll(entries []*model.ScheduleEntry) []Conflict {
	var conflicts []Conflict

	byEmployee := groupByEmployee(entries)

	for empID, empEntries := range byEmployee {
		conflicts = append(conflicts, d.detectOverlaps(empID, empEntries)...)
		conflicts = append(conflicts, d.detectRestViolations(empID, empEntries)...)
		conflicts = append(conflicts, d.detectMaxHoursViolations(empID, empEntries)...)
	}

	return conflicts
}

// detectOverlaps 检测同日时间重叠
func (d *ConflictDetector) detectOverlaps(empID uuid.UUID, entries []*model.ScheduleEntry) []Conflict {
	var conflicts []Conflict

	for i, entry := range entries {
		for _, other := range entries[i+1:] {
			if entry.Date != other.Date {
				continue
			}
			if entry.StartTime < other.EndTime && entry.EndTime > other.StartTime {
				conflicts = append(conflicts, Conflict{
					Type:       ConflictOverlap,
					EmployeeID: empID,
					Date:       entry.Date,
					Message: fmt.Sprintf(
						"Shifts %s-%s and %s-%s overlap on %s",
						entry.StartTime, entry.EndTime, other.StartTime, other.EndTime, entry.Date,
					),
					Entries: []uuid.UUID{entry.ID, other.ID},
				})
			}
		}
	}

	return conflicts
}

// detectRestViolations 检测相邻班次休息不足
func (d *ConflictDetector) detectRestViolations(empID uuid.UUID, entries []*model.ScheduleEntry) []Conflict {
	var conflicts []Conflict

	if len(entries) < 2 {
		return conflicts
	}

	// 按开始时间戳排序
	sorted := make([]*model.ScheduleEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})

	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]

		currentEnd, err := model.CombineDateTime(current.Date, current.EndTime)
		if err != nil {
			continue
		}
		nextStart, err := model.CombineDateTime(next.Date, next.StartTime)
		if err != nil {
			continue
		}

		rest := nextStart.Sub(currentEnd).Hours()
		if rest >= 0 && rest < d.config.MinRestHours {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictRestTime,
				EmployeeID: empID,
				Date:       next.Date,
				Message: fmt.Sprintf(
					"Only %.1f hours of rest between consecutive shifts, minimum is %.1f",
					rest, d.config.MinRestHours,
				),
				Entries: []uuid.UUID{current.ID, next.ID},
			})
		}
	}

	return conflicts
}

// detectMaxHoursViolations 检测周工时超限
func (d *ConflictDetector) detectMaxHoursViolations(empID uuid.UUID, entries []*model.ScheduleEntry) []Conflict {
	var conflicts []Conflict

	if d.config.MaxHoursPerWeek <= 0 {
		return conflicts
	}

	// 按周起始日分组统计工时
	hoursByWeek := make(map[string]float64)
	for _, entry := range entries {
		hoursByWeek[model.WeekStart(entry.Date)] += entry.DurationHours()
	}

	weeks := make([]string, 0, len(hoursByWeek))
	for w := range hoursByWeek {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)

	for _, weekStart := range weeks {
		hours := hoursByWeek[weekStart]
		if hours > d.config.MaxHoursPerWeek {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictMaxHours,
				EmployeeID: empID,
				Date:       weekStart,
				Message: fmt.Sprintf(
					"Weekly hours %.1f exceed the maximum of %.1f for week starting %s",
					hours, d.config.MaxHoursPerWeek, weekStart,
				),
			})
		}
	}

	return conflicts
}

// groupByEmployee 按员工分组，跳过已取消的条目
func groupByEmployee(entries []*model.ScheduleEntry) map[uuid.UUID][]*model.ScheduleEntry {
	result := make(map[uuid.UUID][]*model.ScheduleEntry)
	for _, entry := range entries {
		if entry.IsCancelled() {
			continue
		}
		result[entry.EmployeeID] = append(result[entry.EmployeeID], entry)
	}
	return result
}

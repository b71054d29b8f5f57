// Package model 定义排班校验引擎的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// Employee 员工
type Employee struct {
	BaseModel
	OrgID    uuid.UUID `json:"org_id" db:"org_id"`
	Name     string    `json:"name" db:"name"`
	Email    string    `json:"email,omitempty" db:"email"`
	Phone    string    `json:"phone,omitempty" db:"phone"`
	Role     string    `json:"role,omitempty" db:"role"`
	Status   string    `json:"status" db:"status"` // active/inactive/leave
	HireDate string    `json:"hire_date,omitempty" db:"hire_date"`

	// 资质与可用性
	Qualifications []string         `json:"qualifications" db:"qualifications"`
	Availability   WeekAvailability `json:"availability,omitempty" db:"availability"`

	// 工时约束
	MaxHoursPerWeek float64 `json:"max_hours_per_week,omitempty" db:"max_hours_per_week"`
}

// WeekAvailability 员工每周可用性
// key 为小写星期名（monday..sunday），缺失的星期视为未配置
type WeekAvailability map[string]DayAvailability

// DayAvailability 员工单日可用性
// TimeSlots 为空且 Available 为 true 时表示全天可用
type DayAvailability struct {
	Available bool       `json:"available"`
	Start     string     `json:"start,omitempty"` // HH:MM
	End       string     `json:"end,omitempty"`   // HH:MM
	TimeSlots []TimeSlot `json:"time_slots,omitempty"`
}

// IsActive 检查员工是否在职
func (e *Employee) IsActive() bool {
	return e.Status == "active"
}

// HasQualification 检查员工是否具备某资质
func (e *Employee) HasQualification(q string) bool {
	for _, have := range e.Qualifications {
		if have == q {
			return true
		}
	}
	return false
}

// MissingQualifications 返回员工缺失的资质列表（保持 required 原始顺序）
func (e *Employee) MissingQualifications(required []string) []string {
	var missing []string
	for _, q := range required {
		if !e.HasQualification(q) {
			missing = append(missing, q)
		}
	}
	return missing
}

// AvailabilityOn 返回员工在某星期的可用性配置
// 第二个返回值表示该星期是否有配置
func (w WeekAvailability) AvailabilityOn(weekday string) (DayAvailability, bool) {
	if w == nil {
		return DayAvailability{}, false
	}
	day, ok := w[weekday]
	return day, ok
}

// HasAvailableDay 检查至少有一天可用
// 可用性模式在录入时要求至少一天 available，规则引擎本身不强制
func (w WeekAvailability) HasAvailableDay() bool {
	for _, day := range w {
		if day.Available {
			return true
		}
	}
	return false
}

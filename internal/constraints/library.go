// Package constraints 规则类型目录
package constraints

// RuleParam 规则参数定义
type RuleParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // int, float, string, bool, array, object
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
}

// RuleDefinition 规则类型定义
type RuleDefinition struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Scope       string      `json:"scope"` // global 全局, employee 员工级
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Strictable  bool        `json:"strictable"` // 是否支持硬约束模式
	Params      []RuleParam `json:"params"`
}

// LibraryResponse 规则库响应
type LibraryResponse struct {
	Library []RuleDefinition `json:"library"`
}

// GetLibrary 返回校验引擎支持的全部规则类型定义
func GetLibrary() []RuleDefinition {
	return []RuleDefinition{
		{
			Name:        "availability",
			DisplayName: "可用性限制",
			Scope:       "employee",
			Category:    "时间限制",
			Description: "限制员工在指定星期或指定时间段内不可排班（如固定休息日、进修时段）。",
			Strictable:  true,
			Params: []RuleParam{
				{Name: "restricted_days", Type: "array", Description: "禁排星期列表（monday..sunday）"},
				{Name: "time_restrictions", Type: "array", Description: "禁排时间段列表，每项含 start/end/reason"},
			},
		},
		{
			Name:        "workload",
			DisplayName: "工时上限",
			Scope:       "employee",
			Category:    "工时限制",
			Description: "限制员工单日或单周的累计工作时长，超出上限判定违规。",
			Strictable:  true,
			Params: []RuleParam{
				{Name: "max_hours_per_day", Type: "float", Description: "每日最大工时(小时)", Min: "1", Max: "24"},
				{Name: "max_hours_per_week", Type: "float", Description: "每周最大工时(小时)", Min: "1", Max: "168"},
			},
		},
		{
			Name:        "qualification",
			DisplayName: "资质要求",
			Scope:       "global",
			Category:    "资质要求",
			Description: "要求被排班员工持有指定资质（如健康证、护理证），缺失任一资质即违规。",
			Strictable:  true,
			Params: []RuleParam{
				{Name: "required_qualifications", Type: "array", Description: "必需资质列表"},
				{Name: "shift_types", Type: "array", Description: "适用班次类型，为空表示全部班次"},
			},
		},
		{
			Name:        "preference",
			DisplayName: "班次偏好",
			Scope:       "employee",
			Category:    "偏好",
			Description: "记录员工偏好的班次类型。非严格模式只记录不拦截，严格模式要求班次在偏好列表内。",
			Strictable:  true,
			Params: []RuleParam{
				{Name: "preferred_shift_types", Type: "array", Description: "偏好班次类型列表"},
			},
		},
		{
			Name:        "restriction",
			DisplayName: "班次禁排",
			Scope:       "employee",
			Category:    "时间限制",
			Description: "禁止员工被排到指定班次类型或指定日期。",
			Strictable:  true,
			Params: []RuleParam{
				{Name: "forbidden_shift_types", Type: "array", Description: "禁排班次类型列表"},
				{Name: "forbidden_dates", Type: "array", Description: "禁排日期列表（YYYY-MM-DD）"},
			},
		},
		{
			Name:        "overtime",
			DisplayName: "加班上限",
			Scope:       "global",
			Category:    "成本控制",
			Description: "限制员工每周超出标准工时的加班时长。",
			Strictable:  true,
			Params: []RuleParam{
				{Name: "standard_weekly_hours", Type: "float", Description: "标准周工时(小时)", Default: "40"},
				{Name: "max_weekly_overtime", Type: "float", Description: "每周最大加班(小时)", Default: "0", Min: "0"},
			},
		},
		{
			Name:        "consecutive_days",
			DisplayName: "最大连续工作天数",
			Scope:       "global",
			Category:    "休息保障",
			Description: "限制员工连续工作的最大天数，候选班次并入已有排班后连班超限即违规。",
			Strictable:  true,
			Params: []RuleParam{
				{Name: "max_consecutive_days", Type: "int", Description: "最大连续天数", Default: "7", Min: "1", Max: "14"},
			},
		},
		{
			Name:        "rest_period",
			DisplayName: "班次间最小休息",
			Scope:       "global",
			Category:    "休息保障",
			Description: "要求前一日班次结束与候选班次开始之间留有最小休息间隔。",
			Strictable:  true,
			Params: []RuleParam{
				{Name: "min_rest_hours", Type: "float", Description: "最小休息时间(小时)", Default: "8", Min: "0", Max: "24"},
			},
		},
	}
}

// FindDefinition 按名称查找规则类型定义
func FindDefinition(name string) (RuleDefinition, bool) {
	for _, def := range GetLibrary() {
		if def.Name == name {
			return def, true
		}
	}
	return RuleDefinition{}, false
}

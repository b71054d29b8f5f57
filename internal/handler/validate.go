// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/internal/constraints"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/internal/metrics"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/internal/repository"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/errors"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/rules"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/validator"
)

// ValidateHandler 校验处理器
// 仓储均可为 nil，此时员工资料、规则与既有排班必须随请求内联提供
type ValidateHandler struct {
	engine       *rules.Engine
	employeeRepo *repository.EmployeeRepository
	ruleRepo     *repository.RuleRepository
	scheduleRepo *repository.ScheduleRepository
}

// NewValidateHandler 创建校验处理器
func NewValidateHandler(
	engine *rules.Engine,
	employeeRepo *repository.EmployeeRepository,
	ruleRepo *repository.RuleRepository,
	scheduleRepo *repository.ScheduleRepository,
) *ValidateHandler {
	return &ValidateHandler{
		engine:       engine,
		employeeRepo: employeeRepo,
		ruleRepo:     ruleRepo,
		scheduleRepo: scheduleRepo,
	}
}

// EmployeeInput 员工输入
type EmployeeInput struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name,omitempty"`
	Status          string                 `json:"status,omitempty"`
	Qualifications  []string               `json:"qualifications,omitempty"`
	Availability    model.WeekAvailability `json:"availability,omitempty"`
	MaxHoursPerWeek float64                `json:"max_hours_per_week,omitempty"`
}

// ShiftInput 候选班次输入
type ShiftInput struct {
	Date           string   `json:"date"`       // YYYY-MM-DD
	StartTime      string   `json:"start_time"` // HH:MM
	EndTime        string   `json:"end_time"`   // HH:MM
	ShiftType      string   `json:"shift_type,omitempty"`
	RequiredQuals  []string `json:"required_qualifications,omitempty"`
	ExcludeEntryID string   `json:"exclude_entry_id,omitempty"` // 更新场景下排除自身
}

// RuleInput 规则输入
type RuleInput struct {
	ID             int64         `json:"id"`
	RuleType       string        `json:"rule_type"`
	Name           string        `json:"name,omitempty"`
	EmployeeID     string        `json:"employee_id,omitempty"`
	Constraints    model.JSONMap `json:"constraints,omitempty"`
	Priority       int           `json:"priority,omitempty"`
	Active         *bool         `json:"active,omitempty"`
	Strict         bool          `json:"strict"`
	EffectiveFrom  string        `json:"effective_from,omitempty"`  // YYYY-MM-DD
	EffectiveUntil string        `json:"effective_until,omitempty"` // YYYY-MM-DD
}

// EntryInput 既有排班条目输入
type EntryInput struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	ShiftType  string `json:"shift_type,omitempty"`
	Status     string `json:"status,omitempty"`
}

// ValidateAssignmentRequest 单条分配校验请求
type ValidateAssignmentRequest struct {
	Employee EmployeeInput `json:"employee"`
	Shift    ShiftInput    `json:"shift"`
	Existing []EntryInput  `json:"existing,omitempty"` // 为空且有数据库时从库中加载
	Rules    []RuleInput   `json:"rules,omitempty"`    // 为空且有数据库时从库中加载
	Now      string        `json:"now,omitempty"`      // 评估时间点，默认当前时间
}

// ViolationOutput 违规输出
type ViolationOutput struct {
	RuleID   int64  `json:"rule_id"`
	RuleType string `json:"rule_type"`
	Strict   bool   `json:"strict"`
	Priority int    `json:"priority"`
	Message  string `json:"message"`
}

// CheckOutput 业务预检输出
type CheckOutput struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateAssignmentResponse 单条分配校验响应
type ValidateAssignmentResponse struct {
	Accepted       bool              `json:"accepted"`
	Reason         string            `json:"reason,omitempty"`
	ViolatedRuleID *int64            `json:"violated_rule_id,omitempty"`
	Checks         []CheckOutput     `json:"checks,omitempty"` // 未通过的业务预检
	Violations     []ViolationOutput `json:"violations,omitempty"`
	Duration       string            `json:"duration"`
}

// ValidateAssignment 校验单条排班分配
// 先跑业务预检（冲突/资质/可用性/工时/休息），再跑规则引擎；
// 任一预检失败或任一严格规则失败即拒绝
func (h *ValidateHandler) ValidateAssignment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ValidateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	if appErr := validateAssignmentRequest(&req); appErr != nil {
		respondError(w, appErr)
		return
	}

	employeeID, err := uuid.Parse(req.Employee.ID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的员工ID格式"))
		return
	}

	now := time.Now()
	if req.Now != "" {
		parsed, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的评估时间格式"))
			return
		}
		now = parsed
	}

	var excludeID *uuid.UUID
	if req.Shift.ExcludeEntryID != "" {
		id, err := uuid.Parse(req.Shift.ExcludeEntryID)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的排班条目ID格式"))
			return
		}
		excludeID = &id
	}

	start := time.Now()

	emp, appErr := h.loadEmployee(r, employeeID, req.Employee)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	// 收集既有排班
	entries, appErr := h.loadEntries(r, employeeID, req.Existing)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	// 业务预检
	checks := runPreChecks(emp, &req.Shift, entries, excludeID)
	for _, c := range checks {
		metrics.RecordValidationCheck(c.Field, false)
	}

	// 规则引擎
	ruleSet, appErr := h.loadRules(r, employeeID, req.Rules)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	candidate := &model.Assignment{
		EmployeeID: employeeID,
		Status:     model.StatusAssigned,
		Shift: model.Shift{
			Date:      req.Shift.Date,
			StartTime: req.Shift.StartTime,
			EndTime:   req.Shift.EndTime,
			ShiftType: req.Shift.ShiftType,
		},
	}
	candidate.ID = uuid.New()

	existing := entriesToAssignments(entries)
	decision := h.engine.Evaluate(emp, ruleSet, candidate, existing, now)

	violated := make(map[int64]bool)
	for _, v := range decision.Violations() {
		violated[v.RuleID] = true
		metrics.RecordRuleViolation(string(v.RuleType), v.Strict)
		if h.ruleRepo != nil {
			// 违规计数由调用方落库，评估本身不写状态
			h.ruleRepo.RecordViolation(r.Context(), v.RuleID)
		}
	}
	for _, rule := range ruleSet {
		metrics.RecordRuleEvaluation(string(rule.RuleType), !violated[rule.ID])
	}

	resp := ValidateAssignmentResponse{
		Accepted:       decision.Accepted && len(checks) == 0,
		Reason:         decision.Reason,
		ViolatedRuleID: decision.ViolatedRuleID,
		Checks:         checks,
		Violations:     violationsOutput(decision.Violations()),
		Duration:       time.Since(start).String(),
	}
	if resp.Reason == "" && len(checks) > 0 {
		resp.Reason = checks[0].Message
	}

	metrics.RecordValidationRequest(resp.Accepted, time.Since(start))

	respondJSON(w, http.StatusOK, resp)
}

// validateAssignmentRequest 验证请求字段
func validateAssignmentRequest(req *ValidateAssignmentRequest) *errors.AppError {
	if req.Employee.ID == "" {
		return errors.InvalidInput("employee.id", "员工ID不能为空")
	}
	if req.Shift.Date == "" {
		return errors.InvalidInput("shift.date", "班次日期不能为空")
	}
	if _, err := time.Parse(model.DateLayout, req.Shift.Date); err != nil {
		return errors.InvalidInput("shift.date", "日期格式无效，应为YYYY-MM-DD")
	}
	if req.Shift.StartTime == "" || req.Shift.EndTime == "" {
		return errors.InvalidInput("shift", "班次起止时间不能为空")
	}
	if _, err := model.ParseClock(req.Shift.StartTime); err != nil {
		return errors.InvalidInput("shift.start_time", "时间格式无效，应为HH:MM")
	}
	if _, err := model.ParseClock(req.Shift.EndTime); err != nil {
		return errors.InvalidInput("shift.end_time", "时间格式无效，应为HH:MM")
	}
	return nil
}

// runPreChecks 执行业务预检，返回全部未通过的检查
func runPreChecks(emp *model.Employee, shift *ShiftInput, entries []*model.ScheduleEntry, excludeID *uuid.UUID) []CheckOutput {
	var checks []CheckOutput

	record := func(err error) {
		if err == nil {
			return
		}
		if valErr, ok := errors.AsValidation(err); ok {
			checks = append(checks, CheckOutput{Field: valErr.Field, Message: valErr.Message})
		}
	}

	record(validator.ValidateScheduleConflicts(
		emp.ID, shift.Date, shift.StartTime, shift.EndTime, entries, excludeID))

	if len(shift.RequiredQuals) > 0 {
		record(validator.ValidateEmployeeQualifications(emp.Qualifications, shift.RequiredQuals))
	}

	record(validator.ValidateEmployeeAvailability(
		emp.Availability, shift.Date, shift.StartTime, shift.EndTime))

	if emp.MaxHoursPerWeek > 0 {
		record(validator.ValidateMaxHoursConstraint(
			emp.ID,
			model.WeekStart(shift.Date), model.WeekEnd(shift.Date),
			model.DurationHours(shift.StartTime, shift.EndTime),
			emp.MaxHoursPerWeek,
			entries, excludeID))
	}

	record(validator.ValidateMinimumRestPeriod(
		emp.ID, shift.Date, shift.StartTime, shift.EndTime,
		entries, validator.DefaultMinimumRestHours, excludeID))

	return checks
}

// loadEmployee 构造员工资料，请求内联优先
// 内联资料只带ID且有数据库时，从员工仓储补全资质与可用性
func (h *ValidateHandler) loadEmployee(r *http.Request, employeeID uuid.UUID, in EmployeeInput) (*model.Employee, *errors.AppError) {
	inlineOnly := len(in.Qualifications) == 0 && len(in.Availability) == 0 && in.MaxHoursPerWeek == 0

	if inlineOnly && h.employeeRepo != nil {
		stored, err := h.employeeRepo.GetByID(r.Context(), employeeID)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "加载员工资料失败")
		}
		if stored != nil {
			return stored, nil
		}
	}

	emp := &model.Employee{
		Name:            in.Name,
		Status:          in.Status,
		Qualifications:  in.Qualifications,
		Availability:    in.Availability,
		MaxHoursPerWeek: in.MaxHoursPerWeek,
	}
	emp.ID = employeeID
	if emp.Status == "" {
		emp.Status = "active"
	}
	return emp, nil
}

// loadEntries 获取员工既有排班，请求内联优先
func (h *ValidateHandler) loadEntries(r *http.Request, employeeID uuid.UUID, inline []EntryInput) ([]*model.ScheduleEntry, *errors.AppError) {
	if len(inline) > 0 {
		entries := make([]*model.ScheduleEntry, 0, len(inline))
		for _, in := range inline {
			entry, err := entryFromInput(in)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	if h.scheduleRepo == nil {
		return nil, nil
	}

	entries, err := h.scheduleRepo.ListByEmployee(r.Context(), employeeID, repository.DefaultListFilter().WithLimit(10000))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "加载既有排班失败")
	}
	return entries, nil
}

// loadRules 获取适用规则，请求内联优先
func (h *ValidateHandler) loadRules(r *http.Request, employeeID uuid.UUID, inline []RuleInput) ([]*rules.Rule, *errors.AppError) {
	if len(inline) > 0 {
		ruleSet := make([]*rules.Rule, 0, len(inline))
		for _, in := range inline {
			rule, appErr := ruleFromInput(in)
			if appErr != nil {
				return nil, appErr
			}
			ruleSet = append(ruleSet, rule)
		}
		return ruleSet, nil
	}

	if h.ruleRepo == nil {
		return nil, nil
	}

	ruleSet, err := h.ruleRepo.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "加载规则失败")
	}
	return ruleSet, nil
}

// entryFromInput 转换排班条目输入
func entryFromInput(in EntryInput) (*model.ScheduleEntry, *errors.AppError) {
	entry := &model.ScheduleEntry{
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		ShiftType: in.ShiftType,
		Status:    model.AssignmentStatus(in.Status),
	}
	if entry.Status == "" {
		entry.Status = model.StatusAssigned
	}
	if in.ID != "" {
		id, err := uuid.Parse(in.ID)
		if err != nil {
			return nil, errors.InvalidInput("existing.id", "无效的排班条目ID格式: "+in.ID)
		}
		entry.ID = id
	} else {
		entry.ID = uuid.New()
	}
	if in.EmployeeID != "" {
		id, err := uuid.Parse(in.EmployeeID)
		if err != nil {
			return nil, errors.InvalidInput("existing.employee_id", "无效的员工ID格式: "+in.EmployeeID)
		}
		entry.EmployeeID = id
	}
	return entry, nil
}

// ruleFromInput 转换规则输入并解码约束
func ruleFromInput(in RuleInput) (*rules.Rule, *errors.AppError) {
	rule, err := rules.NewRule(in.ID, rules.Type(in.RuleType), in.Constraints)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "规则约束无效")
	}
	rule.Name = in.Name
	rule.Strict = in.Strict
	if in.Priority > 0 {
		rule.Priority = in.Priority
	}
	if in.Active != nil {
		rule.Active = *in.Active
	}
	if in.EmployeeID != "" {
		id, err := uuid.Parse(in.EmployeeID)
		if err != nil {
			return nil, errors.InvalidInput("rules.employee_id", "无效的员工ID格式: "+in.EmployeeID)
		}
		rule.EmployeeID = &id
	}
	if in.EffectiveFrom != "" {
		t, err := time.Parse(model.DateLayout, in.EffectiveFrom)
		if err != nil {
			return nil, errors.InvalidInput("rules.effective_from", "日期格式无效，应为YYYY-MM-DD")
		}
		rule.EffectiveFrom = &t
	}
	if in.EffectiveUntil != "" {
		t, err := time.Parse(model.DateLayout, in.EffectiveUntil)
		if err != nil {
			return nil, errors.InvalidInput("rules.effective_until", "日期格式无效，应为YYYY-MM-DD")
		}
		rule.EffectiveUntil = &t
	}
	return rule, nil
}

// entriesToAssignments 把排班条目转为规则引擎使用的分配记录
func entriesToAssignments(entries []*model.ScheduleEntry) []*model.Assignment {
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
	return assignments
}

// violationsOutput 转换违规输出
func violationsOutput(violations []rules.Violation) []ViolationOutput {
	out := make([]ViolationOutput, len(violations))
	for i, v := range violations {
		out[i] = ViolationOutput{
			RuleID:   v.RuleID,
			RuleType: string(v.RuleType),
			Strict:   v.Strict,
			Priority: v.Priority,
			Message:  v.Message,
		}
	}
	return out
}

// ValidateScheduleRequest 整表冲突检测请求
type ValidateScheduleRequest struct {
	Entries         []EntryInput `json:"entries"`
	StartDate       string       `json:"start_date,omitempty"` // 为空且有数据库时必填
	EndDate         string       `json:"end_date,omitempty"`
	MinRestHours    float64      `json:"min_rest_hours,omitempty"`
	MaxHoursPerWeek float64      `json:"max_hours_per_week,omitempty"`
}

// ConflictOutput 冲突输出
type ConflictOutput struct {
	Type       string   `json:"type"`
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date,omitempty"`
	Message    string   `json:"message"`
	Entries    []string `json:"entries,omitempty"`
}

// ValidateScheduleResponse 整表冲突检测响应
type ValidateScheduleResponse struct {
	Valid     bool             `json:"valid"`
	Conflicts []ConflictOutput `json:"conflicts"`
	Duration  string           `json:"duration"`
}

// ValidateSchedule 对整份排班计划做冲突检测
func (h *ValidateHandler) ValidateSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ValidateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	start := time.Now()

	var entries []*model.ScheduleEntry
	if len(req.Entries) > 0 {
		for _, in := range req.Entries {
			entry, appErr := entryFromInput(in)
			if appErr != nil {
				respondError(w, appErr)
				return
			}
			entries = append(entries, entry)
		}
	} else {
		if h.scheduleRepo == nil || req.StartDate == "" || req.EndDate == "" {
			respondError(w, errors.New(errors.CodeInvalidInput, "排班条目列表不能为空"))
			return
		}
		loaded, err := h.scheduleRepo.ListByDateRange(r.Context(), req.StartDate, req.EndDate)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "加载排班条目失败"))
			return
		}
		entries = loaded
	}

	config := validator.DefaultDetectorConfig()
	if req.MinRestHours > 0 {
		config.MinRestHours = req.MinRestHours
	}
	if req.MaxHoursPerWeek > 0 {
		config.MaxHoursPerWeek = req.MaxHoursPerWeek
	}

	detector := validator.NewConflictDetector(config)
	conflicts := detector.DetectAll(entries)

	out := make([]ConflictOutput, len(conflicts))
	for i, c := range conflicts {
		entryIDs := make([]string, len(c.Entries))
		for j, id := range c.Entries {
			entryIDs[j] = id.String()
		}
		out[i] = ConflictOutput{
			Type:       string(c.Type),
			EmployeeID: c.EmployeeID.String(),
			Date:       c.Date,
			Message:    c.Message,
			Entries:    entryIDs,
		}
	}

	resp := ValidateScheduleResponse{
		Valid:     len(conflicts) == 0,
		Conflicts: out,
		Duration:  time.Since(start).String(),
	}

	metrics.RecordValidationRequest(resp.Valid, time.Since(start))

	respondJSON(w, http.StatusOK, resp)
}

// RulesLibrary 返回支持的规则类型目录
func (h *ValidateHandler) RulesLibrary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	respondJSON(w, http.StatusOK, constraints.LibraryResponse{Library: constraints.GetLibrary()})
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
		"fields":  err.Fields,
	})
}

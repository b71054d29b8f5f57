// Package model 定义排班校验引擎的核心数据模型
package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout 日期格式
	DateLayout = "2006-01-02"
	// ClockLayout 时刻格式
	ClockLayout = "15:04"
)

// ParseClock 解析 HH:MM 时刻，返回自零点起的分钟数
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("无效的时刻 %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DurationHours 计算两个 HH:MM 时刻之间的小时数
// end 早于 start 时视为跨越午夜，先加 24 小时再相减
func DurationHours(start, end string) float64 {
	s, err := ParseClock(start)
	if err != nil {
		return 0
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0
	}

	minutes := e - s
	if minutes < 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60.0
}

// IsOvertimeShift 检查班次时长是否构成加班
func IsOvertimeShift(durationHours float64) bool {
	return durationHours > 8.0
}

// WeekdayName 返回日期对应的小写星期名（monday..sunday）
func WeekdayName(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return strings.ToLower(t.Weekday().String())
}

// WeekStart 返回日期所在周的开始日期（周一）
func WeekStart(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	// time.Weekday 以周日为 0，转换为周一为 0 的偏移
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(DateLayout)
}

// WeekEnd 返回日期所在周的结束日期（周日）
func WeekEnd(date string) string {
	t, err := time.Parse(DateLayout, WeekStart(date))
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 6).Format(DateLayout)
}

// PreviousDate 获取前一天日期
func PreviousDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// NextDate 获取后一天日期
func NextDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(DateLayout)
}

// CombineDateTime 将日期与 HH:MM 时刻合并为时间戳
func CombineDateTime(date, clock string) (time.Time, error) {
	return time.Parse(DateLayout+" "+ClockLayout, date+" "+clock)
}

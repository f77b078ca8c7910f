package domain

import "time"

// AvailabilityWindow 表示医生开放预约的一段连续时间
// 同一个医生的任意两个时间窗不允许重叠（插入时校验）
type AvailabilityWindow struct {
	ID             int64        `json:"id"`
	PractitionerID int64        `json:"practitionerID"`
	Interval       TimeInterval `json:"interval"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// DaySchedule 是每周排班模板中某一天的设置
// StartTime 和 EndTime 的格式为 "HH:MM"
type DaySchedule struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// WeeklyTemplate 是医生的每周排班模板，下标为 time.Weekday（0 表示周日）
// 模板本身不落库，只有展开后的时间窗会被持久化
type WeeklyTemplate [7]DaySchedule

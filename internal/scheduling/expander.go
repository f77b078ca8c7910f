package scheduling

import (
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
)

// parseTimeOfDay 解析 "HH:MM" 格式的时刻，返回距离当天零点的时长
func parseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// ExpandWeeklyTemplate 把每周排班模板展开为从 startDate 起 weeksAhead 周内的具体时间窗
// 每个日历日至多产生一个时间窗（模板的模型就是每天一段连续的出诊时间）
// startDate 应该由调用方取"明天"的零点，避免当天时段已经过去的歧义
// 展开结果应该交给 ReplaceFutureAvailabilityWindows 持久化
func ExpandWeeklyTemplate(tmpl domain.WeeklyTemplate, startDate time.Time, weeksAhead int) ([]domain.TimeInterval, error) {
	// 先校验模板，避免展开到一半才发现非法的某一天
	enabled := false
	starts := [7]time.Duration{}
	ends := [7]time.Duration{}
	for weekday, day := range tmpl {
		if !day.Enabled {
			continue
		}
		enabled = true

		start, err := parseTimeOfDay(day.StartTime)
		if err != nil {
			return nil, domain.ErrInvalidTemplate
		}
		end, err := parseTimeOfDay(day.EndTime)
		if err != nil {
			return nil, domain.ErrInvalidTemplate
		}
		if start >= end {
			return nil, domain.ErrInvalidTemplate
		}

		starts[weekday] = start
		ends[weekday] = end
	}
	if !enabled {
		return nil, domain.ErrEmptyTemplate
	}

	intervals := make([]domain.TimeInterval, 0, weeksAhead*7)
	for i := 0; i < weeksAhead*7; i++ {
		date := startDate.AddDate(0, 0, i)
		weekday := date.Weekday()
		if !tmpl[weekday].Enabled {
			continue
		}

		midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		intervals = append(intervals, domain.TimeInterval{
			Start: midnight.Add(starts[weekday]),
			End:   midnight.Add(ends[weekday]),
		})
	}

	return intervals, nil
}

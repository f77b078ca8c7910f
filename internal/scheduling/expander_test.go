package scheduling

import (
	"testing"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayTemplate() domain.WeeklyTemplate {
	tmpl := domain.WeeklyTemplate{}
	for _, weekday := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		tmpl[weekday] = domain.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"}
	}
	return tmpl
}

func TestExpandWeeklyTemplate(t *testing.T) {
	// 2026-09-14 是周一
	startDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	intervals, err := ExpandWeeklyTemplate(weekdayTemplate(), startDate, 2)
	require.NoError(t, err)

	// 每周 5 个工作日，共 2 周
	require.Len(t, intervals, 10)

	seenDays := map[string]int{}
	for _, interval := range intervals {
		weekday := interval.Start.Weekday()
		assert.NotEqual(t, time.Saturday, weekday)
		assert.NotEqual(t, time.Sunday, weekday)

		assert.Equal(t, 9, interval.Start.Hour())
		assert.Equal(t, 17, interval.End.Hour())
		assert.True(t, interval.Valid())

		// 每个日历日至多一个时间窗
		seenDays[interval.Start.Format("2006-01-02")]++
	}
	for day, count := range seenDays {
		assert.Equal(t, 1, count, "day %s", day)
	}

	// 第一个时间窗就落在 startDate 当天
	assert.Equal(t, startDate.Add(9*time.Hour), intervals[0].Start)
	// 最后一个时间窗在两周范围内
	assert.True(t, intervals[len(intervals)-1].End.Before(startDate.AddDate(0, 0, 14)))
}

func TestExpandWeeklyTemplatePartialWeek(t *testing.T) {
	tmpl := domain.WeeklyTemplate{}
	tmpl[time.Wednesday] = domain.DaySchedule{Enabled: true, StartTime: "14:00", EndTime: "16:30"}

	// 从周五开始展开一周，只会命中一个周三
	startDate := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	intervals, err := ExpandWeeklyTemplate(tmpl, startDate, 1)
	require.NoError(t, err)

	require.Len(t, intervals, 1)
	assert.Equal(t, time.Date(2026, 9, 16, 14, 0, 0, 0, time.UTC), intervals[0].Start)
	assert.Equal(t, time.Date(2026, 9, 16, 16, 30, 0, 0, time.UTC), intervals[0].End)
}

func TestExpandWeeklyTemplateErrors(t *testing.T) {
	startDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	t.Run("没有启用任何一天", func(t *testing.T) {
		_, err := ExpandWeeklyTemplate(domain.WeeklyTemplate{}, startDate, 2)
		assert.ErrorIs(t, err, domain.ErrEmptyTemplate)
	})

	t.Run("开始时间不早于结束时间", func(t *testing.T) {
		tmpl := domain.WeeklyTemplate{}
		tmpl[time.Monday] = domain.DaySchedule{Enabled: true, StartTime: "17:00", EndTime: "09:00"}
		_, err := ExpandWeeklyTemplate(tmpl, startDate, 2)
		assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
	})

	t.Run("时刻格式非法", func(t *testing.T) {
		tmpl := domain.WeeklyTemplate{}
		tmpl[time.Monday] = domain.DaySchedule{Enabled: true, StartTime: "9 点", EndTime: "17:00"}
		_, err := ExpandWeeklyTemplate(tmpl, startDate, 2)
		assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
	})

	// 某一天非法时整个模板都不展开，未启用的非法天则被忽略
	t.Run("未启用的天不参与校验", func(t *testing.T) {
		tmpl := weekdayTemplate()
		tmpl[time.Sunday] = domain.DaySchedule{Enabled: false, StartTime: "bad", EndTime: "worse"}
		_, err := ExpandWeeklyTemplate(tmpl, startDate, 1)
		assert.NoError(t, err)
	})
}

package scheduling

import (
	"testing"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

func window(startHour, startMin, endHour, endMin int) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		PractitionerID: 1,
		Interval: domain.TimeInterval{
			Start: testDay.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
			End:   testDay.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
		},
	}
}

func at(hour, min int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

// now 取前一天，让当天所有候选时段都在未来
var dayBefore = testDay.AddDate(0, 0, -1)

func TestGenerateSlots(t *testing.T) {
	windows := []*domain.AvailabilityWindow{window(9, 0, 12, 0)}

	slots := GenerateSlots(testDay, windows, nil, 30*time.Minute, dayBefore)

	require.Len(t, slots, 6)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(9, 30), slots[0].End)
	// 时段首尾相接
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
	assert.Equal(t, at(12, 0), slots[len(slots)-1].End)
}

func TestGenerateSlotsDropsShortTail(t *testing.T) {
	// 1 小时 45 分钟的时间窗按 30 分钟步进只能放下 3 个时段，剩下的 15 分钟被丢弃
	windows := []*domain.AvailabilityWindow{window(9, 0, 10, 45)}

	slots := GenerateSlots(testDay, windows, nil, 30*time.Minute, dayBefore)

	require.Len(t, slots, 3)
	assert.Equal(t, at(10, 30), slots[len(slots)-1].End)
}

func TestGenerateSlotsSkipsBooked(t *testing.T) {
	windows := []*domain.AvailabilityWindow{window(9, 0, 12, 0)}
	booked := []domain.TimeInterval{{Start: at(10, 0), End: at(10, 30)}}

	slots := GenerateSlots(testDay, windows, booked, 30*time.Minute, dayBefore)

	// 被占用的时段消失，之后的时段不受影响
	require.Len(t, slots, 5)
	for _, slot := range slots {
		assert.False(t, domain.Overlaps(slot, booked[0]))
	}
	assert.Equal(t, at(10, 30), slots[2].Start)
}

func TestGenerateSlotsBookedTouchingDoesNotBlock(t *testing.T) {
	windows := []*domain.AvailabilityWindow{window(9, 0, 10, 0)}
	// 占用区间与 09:00-09:30 首尾相接，不应该挡住它
	booked := []domain.TimeInterval{{Start: at(8, 30), End: at(9, 0)}}

	slots := GenerateSlots(testDay, windows, booked, 30*time.Minute, dayBefore)

	require.Len(t, slots, 2)
	assert.Equal(t, at(9, 0), slots[0].Start)
}

func TestGenerateSlotsFiltersPast(t *testing.T) {
	windows := []*domain.AvailabilityWindow{window(9, 0, 12, 0)}
	now := at(10, 5)

	slots := GenerateSlots(testDay, windows, nil, 30*time.Minute, now)

	// 10:00 开始的时段不严格晚于 now，也被过滤
	require.Len(t, slots, 3)
	assert.Equal(t, at(10, 30), slots[0].Start)
}

func TestGenerateSlotsClipsWindowToDay(t *testing.T) {
	// 时间窗从前一天 23:00 持续到当天 01:00，只有落在当天的部分参与生成
	w := &domain.AvailabilityWindow{
		PractitionerID: 1,
		Interval: domain.TimeInterval{
			Start: testDay.Add(-time.Hour),
			End:   testDay.Add(time.Hour),
		},
	}

	slots := GenerateSlots(testDay, []*domain.AvailabilityWindow{w}, nil, 30*time.Minute, dayBefore)

	require.Len(t, slots, 2)
	assert.Equal(t, testDay, slots[0].Start)
}

func TestGenerateSlotsIgnoresOtherDays(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		window(9, 0, 12, 0),
	}
	otherDay := testDay.AddDate(0, 0, 3)

	slots := GenerateSlots(otherDay, windows, nil, 30*time.Minute, dayBefore)
	assert.Empty(t, slots)
}

func TestGenerateSlotsSortedAcrossWindows(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		window(14, 0, 15, 0),
		window(9, 0, 10, 0),
	}

	slots := GenerateSlots(testDay, windows, nil, 30*time.Minute, dayBefore)

	require.Len(t, slots, 4)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
	assert.Equal(t, at(9, 0), slots[0].Start)
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	windows := []*domain.AvailabilityWindow{window(9, 0, 12, 0)}
	booked := []domain.TimeInterval{{Start: at(9, 30), End: at(10, 0)}}

	first := GenerateSlots(testDay, windows, booked, 30*time.Minute, dayBefore)
	second := GenerateSlots(testDay, windows, booked, 30*time.Minute, dayBefore)

	assert.Equal(t, first, second)
}

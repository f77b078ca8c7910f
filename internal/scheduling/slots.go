package scheduling

import (
	"sort"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
)

// GenerateSlots 计算某个医生在 date 当天可供预约的起始时段
//
// 对每一个与 date 当天有交集的时间窗：
//  1. 把时间窗裁剪到当天
//  2. 从裁剪后的起点开始，按 duration 步进生成候选时段
//  3. 一旦候选时段的结束时刻超出时间窗就停止（不足一个时长的尾巴直接丢弃，不做四舍五入）
//  4. 起始时刻不在 now 之后的候选被丢弃（但继续往后走）
//  5. 与任何已占用区间重叠的候选被丢弃（但继续往后走）
//
// 互相重叠的时间窗会被各自独立处理，产生的重复时段不做去重——
// 时间窗在插入时已经保证了同一医生的时间窗互不重叠
//
// now 由调用方注入，本函数不读系统时钟，保证相同输入下结果可复现
func GenerateSlots(date time.Time, windows []*domain.AvailabilityWindow, booked []domain.TimeInterval, duration time.Duration, now time.Time) []domain.TimeInterval {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	day := domain.TimeInterval{Start: dayStart, End: dayEnd}

	slots := make([]domain.TimeInterval, 0)

	for _, window := range windows {
		if !domain.Overlaps(window.Interval, day) {
			continue
		}

		slotStart := window.Interval.Start
		if slotStart.Before(dayStart) {
			slotStart = dayStart
		}

		for {
			slot := domain.TimeInterval{Start: slotStart, End: slotStart.Add(duration)}
			if slot.End.After(window.Interval.End) {
				break
			}

			if slot.Start.After(now) && !overlapsAny(slot, booked) {
				slots = append(slots, slot)
			}

			slotStart = slotStart.Add(duration)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}

func overlapsAny(slot domain.TimeInterval, booked []domain.TimeInterval) bool {
	for _, b := range booked {
		if domain.Overlaps(slot, b) {
			return true
		}
	}
	return false
}

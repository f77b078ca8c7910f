package domain

import "time"

// TimeInterval 表示一个左闭右开的时间区间 [Start, End)
// 所有的比较都是瞬时值之间的直接比较，不做任何时区转换
type TimeInterval struct {
	Start time.Time `json:"startTime"`
	End   time.Time `json:"endTime"`
}

func (i TimeInterval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps 判断两个区间是否重叠
// 注意首尾相接（一个区间的结束时刻恰好是另一个区间的开始时刻）不算重叠，
// 时段生成依赖这个边界约定来做到时段首尾相接
func Overlaps(a TimeInterval, b TimeInterval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains 判断 outer 是否完整包含 inner
func Contains(outer TimeInterval, inner TimeInterval) bool {
	return !outer.Start.After(inner.Start) && !outer.End.Before(inner.End)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(startHour, endHour int) TimeInterval {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return TimeInterval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestTimeIntervalValid(t *testing.T) {
	assert.True(t, interval(9, 10).Valid())
	assert.False(t, interval(10, 9).Valid())
	// 空区间不合法
	assert.False(t, interval(9, 9).Valid())
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeInterval
		b    TimeInterval
		want bool
	}{
		{"部分重叠", interval(9, 11), interval(10, 12), true},
		{"完全包含", interval(9, 17), interval(10, 11), true},
		{"完全相同", interval(9, 11), interval(9, 11), true},
		{"首尾相接不算重叠", interval(9, 10), interval(10, 11), false},
		{"完全分离", interval(9, 10), interval(14, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// 重叠关系是对称的
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		outer TimeInterval
		inner TimeInterval
		want  bool
	}{
		{"严格包含", interval(9, 17), interval(10, 11), true},
		{"边界重合也算包含", interval(9, 17), interval(9, 17), true},
		{"起点重合", interval(9, 17), interval(9, 10), true},
		{"终点重合", interval(9, 17), interval(16, 17), true},
		{"超出左边界", interval(9, 17), interval(8, 10), false},
		{"超出右边界", interval(9, 17), interval(16, 18), false},
		{"完全在外", interval(9, 17), interval(18, 19), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.outer, tt.inner))
		})
	}
}

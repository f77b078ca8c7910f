package repository

import (
	"testing"

	"github.com/faresld99/medical-appointment-app/internal/config"
	"github.com/stretchr/testify/require"
)

// 时间窗方法必须在所有平台上参与构建，
// 方法表达式在编译期就能发现缺失的方法
var _ = []any{
	(*Repository).CreateAvailabilityWindow,
	(*Repository).DeleteAvailabilityWindow,
	(*Repository).GetFutureAvailabilityWindows,
	(*Repository).ReplaceFutureAvailabilityWindows,
}

func TestNewRepository(t *testing.T) {
	cfg := &config.Config{}

	r := NewRepository(cfg, nil)

	require.NotNil(t, r)
	require.Equal(t, cfg, r.cfg)
}

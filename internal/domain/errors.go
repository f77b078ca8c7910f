package domain

import "errors"

// 预约与时间窗相关操作的错误类型
// 所有被拒绝的修改都不会留下部分写入，调用方可以依据错误类型给出对应的提示
// 其中只有 ErrBusy 是瞬时错误，调用方可以安全地自动重试
var (
	ErrInvalidInterval     = errors.New("invalid interval")
	ErrConflict            = errors.New("interval conflicts with an existing window")
	ErrSlotTaken           = errors.New("slot is no longer available")
	ErrOutsideAvailability = errors.New("interval is outside practitioner availability")
	ErrNotFound            = errors.New("record not found")
	ErrForbidden           = errors.New("operation not allowed for this actor")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidTemplate     = errors.New("template day has start time not before end time")
	ErrEmptyTemplate       = errors.New("template has no enabled day")
	ErrBusy                = errors.New("resource busy, retry later")
)

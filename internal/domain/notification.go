package domain

import "time"

type NotificationKind string

const (
	NotificationBookingRequest   NotificationKind = "booking_request"
	NotificationBookingConfirmed NotificationKind = "booking_confirmed"
	NotificationBookingCancelled NotificationKind = "booking_cancelled"
)

// NotificationMessage 是投递到 notification_queue 的消息体
// 核心只负责发出事件，落库和邮件投递由 notifier 进程完成
type NotificationMessage struct {
	UserID        int64            `json:"userID"`
	Kind          NotificationKind `json:"kind"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	AppointmentID int64            `json:"appointmentID"`
}

// Notification 是站内通知的持久化记录
type Notification struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"userID"`
	Kind          NotificationKind `json:"kind"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	AppointmentID *int64           `json:"appointmentID"`
	IsRead        bool             `json:"isRead"`
	CreatedAt     time.Time        `json:"createdAt"`
}

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/faresld99/medical-appointment-app/internal/scheduling"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishNotification 将通知投递到消息队列，由 notifier 进程负责落库和发邮件
// 预约本身已经提交，投递失败只记日志，不影响接口返回
func (h *Handler) publishNotification(msg domain.NotificationMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("序列化通知消息失败", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("投递通知消息失败", "error", err)
	}
}

func (h *Handler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	practitioner := r.Context().Value(PractitionerInfoCtx).(*domain.Practitioner)

	dateParam := r.URL.Query().Get("date")
	date, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
	if err != nil {
		h.errorResponse(w, r, "日期格式无效，应为 YYYY-MM-DD")
		return
	}

	now := time.Now()
	horizon := now.AddDate(0, 0, h.config.Booking.SlotHorizonDays)
	if date.After(horizon) {
		h.errorResponse(w, r, "日期超出可预约范围")
		return
	}

	windows, err := h.repository.GetFutureAvailabilityWindows(practitioner.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	booked, err := h.repository.GetBookedIntervals(practitioner.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	duration := time.Duration(practitioner.AppointmentDuration) * time.Minute
	slots := scheduling.GenerateSlots(date, windows, booked, duration, now)

	h.successResponse(w, r, "获取可预约时段成功", slots)
}

func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		PractitionerID int64     `json:"practitionerID" validate:"required"`
		StartTime      time.Time `json:"startTime" validate:"required"`
		Notes          string    `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	practitioner, err := h.repository.GetPractitionerByID(req.PractitionerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "医生不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !req.StartTime.After(time.Now()) {
		h.errorResponse(w, r, "不能预约已经过去的时段")
		return
	}

	if req.StartTime.After(time.Now().AddDate(0, 0, h.config.Booking.SlotHorizonDays)) {
		h.errorResponse(w, r, "日期超出可预约范围")
		return
	}

	// 时段长度由医生的单次预约时长决定，患者只提供开始时间
	duration := time.Duration(practitioner.AppointmentDuration) * time.Minute
	appointment := &domain.Appointment{
		PatientID:      myInfo.ID,
		PractitionerID: practitioner.ID,
		Interval: domain.TimeInterval{
			Start: req.StartTime,
			End:   req.StartTime.Add(duration),
		},
		Notes: req.Notes,
	}

	if err := h.repository.BookAppointment(appointment); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInterval):
			h.errorResponse(w, r, "时间区间无效")
		case errors.Is(err, domain.ErrSlotTaken):
			h.errorResponse(w, r, "该时段已被预约，请选择其他时段")
		case errors.Is(err, domain.ErrOutsideAvailability):
			h.errorResponse(w, r, "该时段不在医生的出诊时间内")
		case errors.Is(err, domain.ErrBusy):
			h.errorResponse(w, r, "系统繁忙，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.publishNotification(domain.NotificationMessage{
		UserID:        practitioner.UserID,
		Kind:          domain.NotificationBookingRequest,
		Title:         "新的预约请求",
		Message:       fmt.Sprintf("%s 预约了 %s 的时段，请及时确认", myInfo.FullName, appointment.Interval.Start.Format("2006-01-02 15:04")),
		AppointmentID: appointment.ID,
	})

	h.successResponse(w, r, "预约成功，等待医生确认", appointment)
}

func (h *Handler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	appointment := r.Context().Value(AppointmentInfoCtx).(*domain.Appointment)

	if err := appointment.AuthorizeTransition(domain.AppointmentStatusConfirmed, myInfo.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			h.errorResponse(w, r, "当前状态的预约无法确认")
		case errors.Is(err, domain.ErrForbidden):
			h.errorResponse(w, r, "权限不足")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.TransitionAppointmentStatus(appointment.ID, domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			h.errorResponse(w, r, "当前状态的预约无法确认")
		case errors.Is(err, domain.ErrBusy):
			h.errorResponse(w, r, "系统繁忙，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.publishNotification(domain.NotificationMessage{
		UserID:        appointment.PatientID,
		Kind:          domain.NotificationBookingConfirmed,
		Title:         "预约已确认",
		Message:       fmt.Sprintf("您在 %s 的预约已被医生确认", appointment.Interval.Start.Format("2006-01-02 15:04")),
		AppointmentID: appointment.ID,
	})

	h.successResponse(w, r, "确认预约成功", nil)
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	appointment := r.Context().Value(AppointmentInfoCtx).(*domain.Appointment)

	if err := appointment.AuthorizeTransition(domain.AppointmentStatusCancelled, myInfo.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			h.errorResponse(w, r, "该预约已被取消")
		case errors.Is(err, domain.ErrForbidden):
			h.errorResponse(w, r, "权限不足")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.TransitionAppointmentStatus(appointment.ID, appointment.Status, domain.AppointmentStatusCancelled); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			h.errorResponse(w, r, "预约状态已变化，请刷新后重试")
		case errors.Is(err, domain.ErrBusy):
			h.errorResponse(w, r, "系统繁忙，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知对方，而不是操作者自己
	notifyUserID := appointment.PractitionerUserID
	if myInfo.ID == appointment.PractitionerUserID {
		notifyUserID = appointment.PatientID
	}

	h.publishNotification(domain.NotificationMessage{
		UserID:        notifyUserID,
		Kind:          domain.NotificationBookingCancelled,
		Title:         "预约已取消",
		Message:       fmt.Sprintf("%s 的预约已被取消", appointment.Interval.Start.Format("2006-01-02 15:04")),
		AppointmentID: appointment.ID,
	})

	h.successResponse(w, r, "取消预约成功", nil)
}

func (h *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var appointments []*domain.AppointmentWithDetails

	switch myInfo.Role {
	case domain.RolePractitioner:
		practitioner, err := h.repository.GetPractitionerByUserID(myInfo.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		appointments, err = h.repository.GetPractitionerAppointments(practitioner.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	default:
		var err error
		appointments, err = h.repository.GetPatientAppointments(myInfo.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "获取预约列表成功", appointments)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/faresld99/medical-appointment-app/internal/scheduling"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateAvailabilityWindow(w http.ResponseWriter, r *http.Request) {
	myPractitioner := r.Context().Value(MyPractitionerCtx).(*domain.Practitioner)

	var req struct {
		StartTime time.Time `json:"startTime" validate:"required"`
		EndTime   time.Time `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	window := &domain.AvailabilityWindow{
		PractitionerID: myPractitioner.ID,
		Interval: domain.TimeInterval{
			Start: req.StartTime,
			End:   req.EndTime,
		},
	}

	if !window.Interval.Valid() {
		h.errorResponse(w, r, "开始时间必须早于结束时间")
		return
	}

	if err := h.repository.CreateAvailabilityWindow(window); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.errorResponse(w, r, "该时间段与已有的出诊时间重叠")
		case errors.Is(err, domain.ErrBusy):
			h.errorResponse(w, r, "系统繁忙，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建出诊时间成功", window)
}

func (h *Handler) DeleteAvailabilityWindow(w http.ResponseWriter, r *http.Request) {
	myPractitioner := r.Context().Value(MyPractitionerCtx).(*domain.Practitioner)

	windowIDParam := chi.URLParam(r, "id")
	windowID, err := strconv.ParseInt(windowIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "出诊时间ID无效")
		return
	}

	if err := h.repository.DeleteAvailabilityWindow(myPractitioner.ID, windowID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "出诊时间不存在")
		case errors.Is(err, domain.ErrForbidden):
			h.errorResponse(w, r, "权限不足")
		case errors.Is(err, domain.ErrBusy):
			h.errorResponse(w, r, "系统繁忙，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除出诊时间成功", nil)
}

// ApplyWeeklyTemplate 根据每周排班模板批量生成出诊时间
// 生成范围从明天开始，已有的未来出诊时间会被整体替换
func (h *Handler) ApplyWeeklyTemplate(w http.ResponseWriter, r *http.Request) {
	myPractitioner := r.Context().Value(MyPractitionerCtx).(*domain.Practitioner)

	var req struct {
		Template   domain.WeeklyTemplate `json:"template"`
		WeeksAhead int                   `json:"weeksAhead" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.WeeksAhead > h.config.Booking.MaxWeeksAhead {
		h.errorResponse(w, r, "生成周数超出上限")
		return
	}

	// 从明天零点开始生成，避免生成当天已经过去的时间窗
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	intervals, err := scheduling.ExpandWeeklyTemplate(req.Template, startDate, req.WeeksAhead)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyTemplate):
			h.errorResponse(w, r, "排班模板中没有启用任何一天")
		case errors.Is(err, domain.ErrInvalidTemplate):
			h.errorResponse(w, r, "排班模板无效")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.ReplaceFutureAvailabilityWindows(myPractitioner.ID, startDate, intervals); err != nil {
		switch {
		case errors.Is(err, domain.ErrBusy):
			h.errorResponse(w, r, "系统繁忙，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "应用排班模板成功", intervals)
}

func (h *Handler) GetAvailabilityWindows(w http.ResponseWriter, r *http.Request) {
	practitioner := r.Context().Value(PractitionerInfoCtx).(*domain.Practitioner)

	windows, err := h.repository.GetFutureAvailabilityWindows(practitioner.ID, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取出诊时间成功", windows)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	notifications, err := h.repository.GetRecentNotifications(myInfo.ID, 50)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取通知成功", notifications)
}

func (h *Handler) MarkNotificationAsRead(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	notificationIDParam := chi.URLParam(r, "id")
	notificationID, err := strconv.ParseInt(notificationIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "通知ID无效")
		return
	}

	if err := h.repository.MarkNotificationAsRead(notificationID, myInfo.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "通知不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "标记已读成功", nil)
}

package handler

import (
	"net/http"

	"github.com/faresld99/medical-appointment-app/internal/domain"
)

func (h *Handler) GetPractitioners(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")
	location := r.URL.Query().Get("location")

	practitioners, err := h.repository.GetPractitioners(specialty, location)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取医生列表成功", practitioners)
}

func (h *Handler) GetPractitioner(w http.ResponseWriter, r *http.Request) {
	practitioner := r.Context().Value(PractitionerInfoCtx).(*domain.Practitioner)
	h.successResponse(w, r, "获取医生信息成功", practitioner)
}

func (h *Handler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.repository.GetSpecialties()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取科室列表成功", specialties)
}

func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.repository.GetLocations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取出诊地点列表成功", locations)
}

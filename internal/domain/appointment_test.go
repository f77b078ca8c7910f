package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	patientUserID      int64 = 1
	practitionerUserID int64 = 2
	strangerUserID     int64 = 3
)

func newAppointment(status AppointmentStatus) *Appointment {
	return &Appointment{
		ID:                 42,
		PatientID:          patientUserID,
		PractitionerID:     7,
		Status:             status,
		PractitionerUserID: practitionerUserID,
	}
}

func TestAuthorizeTransitionConfirm(t *testing.T) {
	t.Run("医生可以确认待处理的预约", func(t *testing.T) {
		a := newAppointment(AppointmentStatusPending)
		assert.NoError(t, a.AuthorizeTransition(AppointmentStatusConfirmed, practitionerUserID))
	})

	t.Run("患者不能确认预约", func(t *testing.T) {
		a := newAppointment(AppointmentStatusPending)
		assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatusConfirmed, patientUserID), ErrForbidden)
	})

	t.Run("无关的医生不能确认预约", func(t *testing.T) {
		a := newAppointment(AppointmentStatusPending)
		assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatusConfirmed, strangerUserID), ErrForbidden)
	})

	t.Run("已确认的预约不能再次确认", func(t *testing.T) {
		a := newAppointment(AppointmentStatusConfirmed)
		assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatusConfirmed, practitionerUserID), ErrInvalidTransition)
	})

	t.Run("已取消的预约不能确认", func(t *testing.T) {
		a := newAppointment(AppointmentStatusCancelled)
		assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatusConfirmed, practitionerUserID), ErrInvalidTransition)
	})

	// 对已确认的预约，无论操作者是谁，先报告状态非法
	t.Run("状态校验优先于操作者校验", func(t *testing.T) {
		a := newAppointment(AppointmentStatusConfirmed)
		assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatusConfirmed, strangerUserID), ErrInvalidTransition)
	})
}

func TestAuthorizeTransitionCancel(t *testing.T) {
	t.Run("患者可以取消待处理的预约", func(t *testing.T) {
		a := newAppointment(AppointmentStatusPending)
		assert.NoError(t, a.AuthorizeTransition(AppointmentStatusCancelled, patientUserID))
	})

	t.Run("医生可以取消已确认的预约", func(t *testing.T) {
		a := newAppointment(AppointmentStatusConfirmed)
		assert.NoError(t, a.AuthorizeTransition(AppointmentStatusCancelled, practitionerUserID))
	})

	t.Run("无关的用户不能取消预约", func(t *testing.T) {
		a := newAppointment(AppointmentStatusPending)
		assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatusCancelled, strangerUserID), ErrForbidden)
	})

	t.Run("已取消的预约不能再次取消", func(t *testing.T) {
		a := newAppointment(AppointmentStatusCancelled)
		assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatusCancelled, patientUserID), ErrInvalidTransition)
	})
}

func TestAuthorizeTransitionUnknownTarget(t *testing.T) {
	a := newAppointment(AppointmentStatusPending)
	assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatusPending, practitionerUserID), ErrInvalidTransition)
	assert.ErrorIs(t, a.AuthorizeTransition(AppointmentStatus("unknown"), practitionerUserID), ErrInvalidTransition)
}

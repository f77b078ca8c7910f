package domain

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment 的时间区间、患者和医生在创建之后都不允许修改，只有状态会变化
// 预约不会被物理删除，取消只是一次状态转移，历史记录得以保留
type Appointment struct {
	ID             int64             `json:"id"`
	PatientID      int64             `json:"patientID"`
	PractitionerID int64             `json:"practitionerID"`
	Interval       TimeInterval      `json:"interval"`
	Status         AppointmentStatus `json:"status"`
	Notes          string            `json:"notes"`
	CreatedAt      time.Time         `json:"createdAt"`

	// PractitionerUserID 是该预约所属医生对应的用户 ID，由查询时联表得到
	PractitionerUserID int64 `json:"-"`
}

// AuthorizeTransition 判断 actorUserID 能否将预约转移到 target 状态
//   - pending -> confirmed：只允许该预约所属的医生
//   - pending|confirmed -> cancelled：允许该预约所属的医生或预约的患者
//
// 非法的状态转移返回 ErrInvalidTransition，合法转移但操作者不对返回 ErrForbidden
func (a *Appointment) AuthorizeTransition(target AppointmentStatus, actorUserID int64) error {
	isPractitioner := actorUserID == a.PractitionerUserID
	isPatient := actorUserID == a.PatientID

	switch target {
	case AppointmentStatusConfirmed:
		if a.Status != AppointmentStatusPending {
			return ErrInvalidTransition
		}
		if !isPractitioner {
			return ErrForbidden
		}
	case AppointmentStatusCancelled:
		if a.Status == AppointmentStatusCancelled {
			return ErrInvalidTransition
		}
		if !isPractitioner && !isPatient {
			return ErrForbidden
		}
	default:
		return ErrInvalidTransition
	}

	return nil
}

// AppointmentWithDetails 是给前端列表页用的联表结果
type AppointmentWithDetails struct {
	Appointment
	PatientName      string `json:"patientName"`
	PatientEmail     string `json:"patientEmail"`
	PractitionerName string `json:"practitionerName"`
	Specialty        string `json:"specialty"`
	Location         string `json:"location"`
}

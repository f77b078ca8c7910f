package domain

import (
	"time"
)

type Role string

const (
	RolePatient      Role = "patient"
	RolePractitioner Role = "practitioner"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// Practitioner 是医生在 users 之外的执业档案
// AppointmentDuration 是该医生单次预约的固定时长（分钟），由医生本人设置
type Practitioner struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"userID"`
	Specialty           string    `json:"specialty"`
	Location            string    `json:"location"`
	Bio                 string    `json:"bio"`
	AppointmentDuration int32     `json:"appointmentDuration"`
	CreatedAt           time.Time `json:"createdAt"`
	Version             int32     `json:"-"`

	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

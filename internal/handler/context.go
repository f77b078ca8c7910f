package handler

type ContextKey string

var (
	RoleCtxKey          ContextKey = "role"
	SubCtxKey           ContextKey = "sub"
	MyInfoCtx           ContextKey = "myInfo"
	MyPractitionerCtx   ContextKey = "myPractitioner"
	PractitionerInfoCtx ContextKey = "practitionerInfo"
	AppointmentInfoCtx  ContextKey = "appointmentInfo"
)

package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/config"
	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/faresld99/medical-appointment-app/internal/repository"
	"github.com/faresld99/medical-appointment-app/internal/scheduling"
	"github.com/faresld99/medical-appointment-app/internal/utils"
)

// demoTemplate 是演示数据使用的每周排班模板：工作日上午和下午出诊
var demoTemplate = domain.WeeklyTemplate{
	time.Sunday:    {Enabled: false},
	time.Monday:    {Enabled: true, StartTime: "09:00", EndTime: "12:00"},
	time.Tuesday:   {Enabled: true, StartTime: "09:00", EndTime: "12:00"},
	time.Wednesday: {Enabled: true, StartTime: "14:00", EndTime: "17:00"},
	time.Thursday:  {Enabled: true, StartTime: "09:00", EndTime: "12:00"},
	time.Friday:    {Enabled: true, StartTime: "14:00", EndTime: "17:00"},
	time.Saturday:  {Enabled: false},
}

// SeedDemoData 生成一批患者、医生、出诊时间和预约，用于本地开发和演示
func SeedDemoData(r *repository.Repository, cfg *config.Config, patientCount int, practitionerCount int) {
	// 插入患者
	patients := make([]*domain.User, 0, patientCount)
	for i := 0; i < patientCount; i++ {
		user, err := utils.GenerateRandomUser(domain.RolePatient, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成随机患者", "error", err)
			continue
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("插入患者失败", "error", err)
			continue
		}
		patients = append(patients, user)
	}
	slog.Info("插入患者完成", "count", len(patients))

	// 插入医生及其出诊时间
	practitioners := make([]*domain.Practitioner, 0, practitionerCount)
	tomorrow := time.Now().AddDate(0, 0, 1)
	startDate := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())

	for i := 0; i < practitionerCount; i++ {
		user, err := utils.GenerateRandomUser(domain.RolePractitioner, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成随机医生", "error", err)
			continue
		}
		practitioner := utils.GenerateRandomPractitioner()
		if err := r.CreatePractitionerUser(user, practitioner); err != nil {
			slog.Error("插入医生失败", "error", err)
			continue
		}

		intervals, err := scheduling.ExpandWeeklyTemplate(demoTemplate, startDate, 4)
		if err != nil {
			slog.Error("展开排班模板失败", "error", err)
			continue
		}
		if err := r.ReplaceFutureAvailabilityWindows(practitioner.ID, startDate, intervals); err != nil {
			slog.Error("插入出诊时间失败", "error", err)
			continue
		}

		practitioners = append(practitioners, practitioner)
	}
	slog.Info("插入医生完成", "count", len(practitioners))

	if len(patients) == 0 || len(practitioners) == 0 {
		return
	}

	// 为每个医生生成几条预约，随机落在明天的第一个出诊时段内
	appointmentCount := 0
	for _, practitioner := range practitioners {
		windows, err := r.GetFutureAvailabilityWindows(practitioner.ID, startDate)
		if err != nil || len(windows) == 0 {
			continue
		}

		window := windows[0]
		duration := time.Duration(practitioner.AppointmentDuration) * time.Minute

		for i := 0; i < rand.Intn(3)+1; i++ {
			patient := patients[rand.Intn(len(patients))]
			start := window.Interval.Start.Add(time.Duration(i) * duration)
			appointment := &domain.Appointment{
				PatientID:      patient.ID,
				PractitionerID: practitioner.ID,
				Interval: domain.TimeInterval{
					Start: start,
					End:   start.Add(duration),
				},
			}

			if err := r.BookAppointment(appointment); err != nil {
				slog.Error("插入预约失败", "error", err)
				continue
			}

			// 一部分预约直接确认，模拟医生已经处理过的状态
			if rand.Intn(2) == 0 {
				if err := r.TransitionAppointmentStatus(appointment.ID, domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed); err != nil {
					slog.Error("确认预约失败", "error", err)
				}
			}

			appointmentCount++
		}
	}
	slog.Info("插入预约完成", "count", appointmentCount)
}

package repository

import (
	"context"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
)

// BookAppointment 是预约写入的唯一入口
// 在同一个持有医生咨询锁的事务中完成重叠复查、可用性复查和插入：
//  1. 与该医生任何未取消的预约重叠 -> ErrSlotTaken
//  2. 不存在完整包含所请求区间的时间窗 -> ErrOutsideAvailability
//  3. 以 pending 状态插入预约
//
// 调用方看到的时段列表可能已经过期，所以这里必须基于当前已提交的数据复查，
// 两个并发的重叠预约请求会在锁上排队，后到者复查时必然失败
func (r *Repository) BookAppointment(appt *domain.Appointment) error {
	if !appt.Interval.Valid() {
		return domain.ErrInvalidInterval
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return mapBusyError(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockPractitioner(ctx, tx, appt.PractitionerID); err != nil {
		return mapBusyError(err)
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE practitioner_id = $1 AND status != 'cancelled'
				AND start_time < $3 AND end_time > $2
		)
	`
	var taken bool
	if err := tx.QueryRowContext(ctx, query, appt.PractitionerID, appt.Interval.Start, appt.Interval.End).Scan(&taken); err != nil {
		return mapBusyError(err)
	}
	if taken {
		return domain.ErrSlotTaken
	}

	query = `
		SELECT EXISTS (
			SELECT 1 FROM availability_windows
			WHERE practitioner_id = $1 AND start_time <= $2 AND end_time >= $3
		)
	`
	var contained bool
	if err := tx.QueryRowContext(ctx, query, appt.PractitionerID, appt.Interval.Start, appt.Interval.End).Scan(&contained); err != nil {
		return mapBusyError(err)
	}
	if !contained {
		return domain.ErrOutsideAvailability
	}

	appt.Status = domain.AppointmentStatusPending
	query = `
		INSERT INTO appointments (patient_id, practitioner_id, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	args := []any{appt.PatientID, appt.PractitionerID, appt.Interval.Start, appt.Interval.End, appt.Status, appt.Notes}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &appt.CreatedAt); err != nil {
		return mapBusyError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapBusyError(err)
	}

	return nil
}

// GetAppointmentByID 返回预约本身以及所属医生对应的用户 ID（状态转移鉴权需要）
func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT a.patient_id, a.practitioner_id, a.start_time, a.end_time, a.status, a.notes, a.created_at, p.user_id
		FROM appointments a
		JOIN practitioners p ON a.practitioner_id = p.id
		WHERE a.id = $1
	`

	appt := &domain.Appointment{
		ID: id,
	}

	dst := []any{&appt.PatientID, &appt.PractitionerID, &appt.Interval.Start, &appt.Interval.End, &appt.Status, &appt.Notes, &appt.CreatedAt, &appt.PractitionerUserID}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return appt, nil
}

// TransitionAppointmentStatus 把一条预约从 from 状态原子地更新到 to 状态
// WHERE 条件锁定了调用方观察到的当前状态，如果没有命中任何行，
// 说明有并发操作抢先改变了状态，从观察到的状态出发的转移已经不再合法
func (r *Repository) TransitionAppointmentStatus(id int64, from domain.AppointmentStatus, to domain.AppointmentStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `UPDATE appointments SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.dbpool.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return mapBusyError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

// GetBookedIntervals 返回医生所有未取消且尚未结束的预约区间，供时段生成使用
func (r *Repository) GetBookedIntervals(practitionerID int64, from time.Time) ([]domain.TimeInterval, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT start_time, end_time
		FROM appointments
		WHERE practitioner_id = $1 AND status != 'cancelled' AND end_time > $2
	`

	rows, err := r.dbpool.QueryContext(ctx, query, practitionerID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	intervals := make([]domain.TimeInterval, 0)
	for rows.Next() {
		var interval domain.TimeInterval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return intervals, nil
}

const appointmentDetailsQuery = `
	SELECT
		a.id, a.patient_id, a.practitioner_id, a.start_time, a.end_time,
		a.status, a.notes, a.created_at,
		u_patient.full_name, u_patient.email,
		u_pract.full_name, p.user_id,
		p.specialty, p.location
	FROM appointments a
	JOIN users u_patient ON a.patient_id = u_patient.id
	JOIN practitioners p ON a.practitioner_id = p.id
	JOIN users u_pract ON p.user_id = u_pract.id
`

func (r *Repository) scanAppointmentDetails(ctx context.Context, query string, arg any) ([]*domain.AppointmentWithDetails, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.AppointmentWithDetails, 0)
	for rows.Next() {
		a := &domain.AppointmentWithDetails{}
		dst := []any{
			&a.ID, &a.PatientID, &a.PractitionerID, &a.Interval.Start, &a.Interval.End,
			&a.Status, &a.Notes, &a.CreatedAt,
			&a.PatientName, &a.PatientEmail,
			&a.PractitionerName, &a.PractitionerUserID,
			&a.Specialty, &a.Location,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *Repository) GetPatientAppointments(patientID int64) ([]*domain.AppointmentWithDetails, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := appointmentDetailsQuery + ` WHERE a.patient_id = $1 ORDER BY a.start_time DESC`
	return r.scanAppointmentDetails(ctx, query, patientID)
}

func (r *Repository) GetPractitionerAppointments(practitionerID int64) ([]*domain.AppointmentWithDetails, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := appointmentDetailsQuery + ` WHERE a.practitioner_id = $1 ORDER BY a.start_time DESC`
	return r.scanAppointmentDetails(ctx, query, practitionerID)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
)

// CreateAvailabilityWindow 为医生新增一个时间窗
// 新的时间窗与该医生任何已有时间窗重叠时返回 ErrConflict
// 重叠校验和插入在同一个事务中完成，并且持有该医生的咨询锁
func (r *Repository) CreateAvailabilityWindow(w *domain.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return mapBusyError(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockPractitioner(ctx, tx, w.PractitionerID); err != nil {
		return mapBusyError(err)
	}

	// 左闭右开的重叠判断：首尾相接不算重叠
	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_windows
			WHERE practitioner_id = $1 AND start_time < $3 AND end_time > $2
		)
	`
	var overlapping bool
	if err := tx.QueryRowContext(ctx, query, w.PractitionerID, w.Interval.Start, w.Interval.End).Scan(&overlapping); err != nil {
		return mapBusyError(err)
	}
	if overlapping {
		return domain.ErrConflict
	}

	query = `
		INSERT INTO availability_windows (practitioner_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, query, w.PractitionerID, w.Interval.Start, w.Interval.End).Scan(&w.ID, &w.CreatedAt); err != nil {
		return mapBusyError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapBusyError(err)
	}

	return nil
}

// DeleteAvailabilityWindow 删除一个时间窗
// 时间窗不存在返回 ErrNotFound，属于其他医生返回 ErrForbidden
// 与其他写操作一样持有该医生的咨询锁，避免删除与预约的可用性复查交错
func (r *Repository) DeleteAvailabilityWindow(practitionerID int64, windowID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return mapBusyError(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockPractitioner(ctx, tx, practitionerID); err != nil {
		return mapBusyError(err)
	}

	var ownerID int64
	query := `SELECT practitioner_id FROM availability_windows WHERE id = $1`
	if err := tx.QueryRowContext(ctx, query, windowID).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapBusyError(err)
	}

	if ownerID != practitionerID {
		return domain.ErrForbidden
	}

	query = `DELETE FROM availability_windows WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, windowID); err != nil {
		return mapBusyError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapBusyError(err)
	}

	return nil
}

// GetFutureAvailabilityWindows 按开始时间升序返回医生从 from 起仍然有效的时间窗
// 只读查询，不加锁，可以重复调用
func (r *Repository) GetFutureAvailabilityWindows(practitionerID int64, from time.Time) ([]*domain.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, practitioner_id, start_time, end_time, created_at
		FROM availability_windows
		WHERE practitioner_id = $1 AND end_time > $2
		ORDER BY start_time ASC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, practitionerID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		w := &domain.AvailabilityWindow{}
		dst := []any{&w.ID, &w.PractitionerID, &w.Interval.Start, &w.Interval.End, &w.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

// ReplaceFutureAvailabilityWindows 在一个事务中先删除医生从 from 起的所有时间窗，再插入新的时间窗
// 事务持有该医生的咨询锁，读方不会观察到删完未插的中间状态
func (r *Repository) ReplaceFutureAvailabilityWindows(practitionerID int64, from time.Time, intervals []domain.TimeInterval) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return mapBusyError(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockPractitioner(ctx, tx, practitionerID); err != nil {
		return mapBusyError(err)
	}

	query := `DELETE FROM availability_windows WHERE practitioner_id = $1 AND start_time >= $2`
	if _, err := tx.ExecContext(ctx, query, practitionerID, from); err != nil {
		return mapBusyError(err)
	}

	query = `
		INSERT INTO availability_windows (practitioner_id, start_time, end_time)
		VALUES ($1, $2, $3)
	`
	for _, interval := range intervals {
		if _, err := tx.ExecContext(ctx, query, practitionerID, interval.Start, interval.End); err != nil {
			return mapBusyError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapBusyError(err)
	}

	return nil
}

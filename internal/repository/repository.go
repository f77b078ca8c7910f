package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/faresld99/medical-appointment-app/internal/config"
	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// lockPractitioner 在当前事务中获取以医生 ID 为键的咨询锁
// 同一个医生的所有写操作（添加时间窗、批量替换、预约）都经过这把锁串行化，
// 锁会随事务提交或回滚自动释放
func lockPractitioner(ctx context.Context, tx *sql.Tx, practitionerID int64) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, practitionerID)
	return err
}

// mapBusyError 把数据库层面的瞬时失败翻译为可重试的 ErrBusy
// 其余错误原样返回
func mapBusyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrBusy
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // 串行化失败、死锁、锁不可用
			return domain.ErrBusy
		}
	}

	return err
}

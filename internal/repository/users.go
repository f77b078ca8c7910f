package repository

import (
	"context"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT email, password_hash, full_name, role, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, full_name, role, created_at, version
		FROM users WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Email: email,
	}

	dst := []any{&user.ID, &user.PasswordHash, &user.FullName, &user.Role, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{user.Email, user.PasswordHash, user.FullName, user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

// CreatePractitionerUser 在一个事务中创建医生账号和对应的执业档案
func (r *Repository) CreatePractitionerUser(user *domain.User, practitioner *domain.Practitioner) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`
	args := []any{user.Email, user.PasswordHash, user.FullName, user.Role}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	practitioner.UserID = user.ID
	query = `
		INSERT INTO practitioners (user_id, specialty, location, bio, appointment_duration)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`
	args = []any{practitioner.UserID, practitioner.Specialty, practitioner.Location, practitioner.Bio, practitioner.AppointmentDuration}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&practitioner.ID, &practitioner.CreatedAt, &practitioner.Version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			email = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{user.PasswordHash, user.Email, user.ID, user.Version}
	dst := []any{&user.FullName, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

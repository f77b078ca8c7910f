package repository

import (
	"context"
	"strings"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/domain"
)

const practitionerWithUserQuery = `
	SELECT
		p.id, p.user_id, p.specialty, p.location, p.bio,
		p.appointment_duration, p.created_at, p.version,
		u.full_name, u.email
	FROM practitioners p
	JOIN users u ON p.user_id = u.id
`

func scanPractitioner(scan func(dst ...any) error) (*domain.Practitioner, error) {
	p := &domain.Practitioner{}
	dst := []any{
		&p.ID, &p.UserID, &p.Specialty, &p.Location, &p.Bio,
		&p.AppointmentDuration, &p.CreatedAt, &p.Version,
		&p.FullName, &p.Email,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPractitioners 返回医生列表，specialty 和 location 为空串时表示不过滤
func (r *Repository) GetPractitioners(specialty string, location string) ([]*domain.Practitioner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if specialty != "" {
		args = append(args, "%"+specialty+"%")
		conditions = append(conditions, "p.specialty ILIKE $1")
	}
	if location != "" {
		args = append(args, "%"+location+"%")
		if len(args) == 1 {
			conditions = append(conditions, "p.location ILIKE $1")
		} else {
			conditions = append(conditions, "p.location ILIKE $2")
		}
	}

	query := practitionerWithUserQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY u.full_name ASC"

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	practitioners := make([]*domain.Practitioner, 0)
	for rows.Next() {
		p, err := scanPractitioner(rows.Scan)
		if err != nil {
			return nil, err
		}
		practitioners = append(practitioners, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return practitioners, nil
}

func (r *Repository) GetPractitionerByID(id int64) (*domain.Practitioner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := practitionerWithUserQuery + ` WHERE p.id = $1`
	return scanPractitioner(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) GetPractitionerByUserID(userID int64) (*domain.Practitioner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := practitionerWithUserQuery + ` WHERE p.user_id = $1`
	return scanPractitioner(r.dbpool.QueryRowContext(ctx, query, userID).Scan)
}

func (r *Repository) GetSpecialties() ([]string, error) {
	return r.distinctPractitionerColumn("specialty")
}

func (r *Repository) GetLocations() ([]string, error) {
	return r.distinctPractitionerColumn("location")
}

func (r *Repository) distinctPractitionerColumn(column string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	// column 只会是上面两个写死的列名，不存在注入问题
	query := `SELECT DISTINCT ` + column + ` FROM practitioners ORDER BY ` + column

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

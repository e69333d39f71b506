package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/patient-service/internal/platform/db"
)

// uniqueViolation is the SQLSTATE raised by the patients_email_key index.
const uniqueViolation = "23505"

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const patientCols = `patient_id, name, email, phone, dob, created_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (name, email, phone, dob)
		VALUES ($1, $2, $3, $4)
		RETURNING patient_id, created_at`,
		p.Name, p.Email, p.Phone, p.DOB.Time,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("patient create: %w", mapPGError(err))
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE patient_id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("patient get by id: %w", mapPGError(err))
	}
	return p, nil
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("patient get by email: %w", mapPGError(err))
	}
	return p, nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET name = $2, email = $3, phone = $4, dob = $5
		WHERE patient_id = $1`,
		p.ID, p.Name, p.Email, p.Phone, p.DOB.Time,
	)
	if err != nil {
		return fmt.Errorf("patient update: %w", mapPGError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient update: %w", ErrNotFound)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE patient_id = $1`, id)
	if err != nil {
		return fmt.Errorf("patient delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient delete: %w", ErrNotFound)
	}
	return nil
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE patient_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("patient exists: %w", err)
	}
	return exists, nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	where, args := filterClause(f)

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("patient count: %w", err)
	}

	n := len(args)
	rows, err := r.conn(ctx).Query(ctx,
		fmt.Sprintf(`SELECT `+patientCols+` FROM patients%s ORDER BY patient_id LIMIT $%d OFFSET $%d`, where, n+1, n+2),
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("patient list: %w", err)
	}
	defer rows.Close()

	patients := make([]*Patient, 0, limit)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("patient list: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("patient list: %w", err)
	}
	return patients, total, nil
}

func (r *repoPG) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var b db.Beginner
	if r.pool != nil {
		b = r.pool
	}
	return db.RunInTx(ctx, b, fn)
}

// filterClause builds the WHERE clause for f. Both filters are substring
// matches, so LIKE metacharacters in the input are escaped.
func filterClause(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if f.Name != "" {
		args = append(args, "%"+escapeLike(f.Name)+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.Phone != "" {
		args = append(args, "%"+escapeLike(f.Phone)+"%")
		conds = append(conds, fmt.Sprintf("phone ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.DOB.Time, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func mapPGError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

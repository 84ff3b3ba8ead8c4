package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
	"github.com/oksasatya/foodstore-auth/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, phone_number, password_hash, role,
	verification_method, verification_status, otp_code, otp_issued_at,
	created_at, updated_at`

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, phone_number, password_hash, role,
			verification_method, verification_status, otp_code, otp_issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.PhoneNumber, u.Password, u.Role,
		u.Method, u.Status, u.OTPCode, nullableTime(u.OTPIssuedAt))

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phoneNumber string) (*entity.User, error) {
	return r.findBy(ctx, "phone_number", phoneNumber)
}

func (r *UserRepository) findBy(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	var issuedAt *time.Time

	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE `+column+` = $1
	`, value)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.Password,
		&u.Role, &u.Method, &u.Status, &u.OTPCode, &issuedAt,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if issuedAt != nil {
		u.OTPIssuedAt = *issuedAt
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, phone_number = $2, password_hash = $3, role = $4,
			verification_status = $5, otp_code = $6, otp_issued_at = $7,
			updated_at = $8
		WHERE id = $9
	`, u.Name, u.PhoneNumber, u.Password, u.Role,
		u.Status, u.OTPCode, nullableTime(u.OTPIssuedAt), u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// nullableTime maps the zero time to NULL so a cleared challenge leaves no
// stale issuance timestamp behind.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

var _ repository.UserRepository = (*UserRepository)(nil)

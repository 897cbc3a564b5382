package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
)

const userColumns = `id, name, email, phone, password_hash, user_type, role, is_admin, email_verified, verified_at, created_at, updated_at`

// UsersRepository implements store.Users.
type UsersRepository struct {
	db DBTX
}

func NewUsersRepository(db DBTX) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UsersRepository) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

func (r *UsersRepository) CreateUser(ctx context.Context, u domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Name,
		nullString(u.Email),
		nullString(u.Phone),
		u.PasswordHash,
		string(u.UserType),
		string(u.Role),
		u.IsAdmin,
		u.EmailVerified,
		nullTime(u.VerifiedAt),
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *UsersRepository) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		newHash, userID,
	)
	return oneRow(res, err)
}

func (r *UsersRepository) MarkEmailVerified(ctx context.Context, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email_verified = TRUE, verified_at = $1, updated_at = now() WHERE id = $2`,
		at.UTC(), userID,
	)
	return oneRow(res, err)
}

func (r *UsersRepository) HasSuperAdmin(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_type = $1)`, string(domain.UserTypeSuperAdmin),
	).Scan(&exists)
	if err != nil {
		return false, mapNotFound(err)
	}
	return exists, nil
}

func (r *UsersRepository) getOne(ctx context.Context, query string, arg any) (domain.User, error) {
	var (
		u          domain.User
		email      sql.NullString
		phone      sql.NullString
		userType   string
		role       string
		verifiedAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &email, &phone, &u.PasswordHash, &userType, &role,
		&u.IsAdmin, &u.EmailVerified, &verifiedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Email = email.String
	u.Phone = phone.String
	u.UserType = domain.UserType(userType)
	u.Role = domain.Role(role)
	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.VerifiedAt = &t
	}
	return u, nil
}

func oneRow(res sql.Result, err error) error {
	if err != nil {
		return mapNotFound(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapNotFound(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

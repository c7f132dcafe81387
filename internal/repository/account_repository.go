package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gig-market/internal/domain"
)

// Account is a stored credential record.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         domain.Role
	Name         string
	Surname      string
	Phone        string
	CompanyName  string
	CreatedAt    time.Time
}

// AccountRepository defines persistence access for credential records.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *Account) error {
	const query = `
        INSERT INTO accounts (id, email, password_hash, role, name, surname, phone, company_name)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Name,
		account.Surname,
		account.Phone,
		account.CompanyName,
	).Scan(&account.CreatedAt)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	const query = `
        SELECT id, email, password_hash, role, name, surname, phone, company_name, created_at
        FROM accounts WHERE LOWER(email)=LOWER($1)`

	var account Account
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.Name,
		&account.Surname,
		&account.Phone,
		&account.CompanyName,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

// IsNotFound reports whether err means no matching row.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/user"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByEmail implements user.UserRepository.
func (u *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, name, email, password_hash, role, employee_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID, &found.Name, &found.Email, &found.PasswordHash,
		&found.Role, &found.EmployeeID, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return found, nil
}

// GetByID implements user.UserRepository.
func (u *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, name, email, password_hash, role, employee_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.Name, &found.Email, &found.PasswordHash,
		&found.Role, &found.EmployeeID, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return found, nil
}

// Create implements user.UserRepository.
func (u *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		INSERT INTO users (name, email, password_hash, role, employee_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, role, employee_id, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.Name, newUser.Email, newUser.PasswordHash, newUser.Role, newUser.EmployeeID,
	).Scan(
		&created.ID, &created.Name, &created.Email, &created.PasswordHash,
		&created.Role, &created.EmployeeID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

// ExistsByEmail implements user.UserRepository.
func (u *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, u.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user email exists: %w", err)
	}

	return exists, nil
}

// LinkEmployee implements user.UserRepository.
func (u *userRepositoryImpl) LinkEmployee(ctx context.Context, userID, employeeID string) error {
	q := GetQuerier(ctx, u.db)

	query := `
		UPDATE users
		SET employee_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, employeeID, userID).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("link employee to user: %w", err)
	}

	return nil
}

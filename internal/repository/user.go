package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/housingportal/housingportal-go/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

// UserRepository handles credential persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// CreateWithStudent inserts the credential, its roles and the student
// profile in a single transaction.
func (r *UserRepository) CreateWithStudent(ctx context.Context, user *model.User, student *model.Student) error {
	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, username, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		for _, role := range user.Roles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_roles (user_id, role) VALUES (?, ?)`, user.ID, role,
			); err != nil {
				return fmt.Errorf("insert role %q: %w", role, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students (id, name, email, phone, major, graduation_year, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			student.ID, student.Name, student.Email, student.Phone, student.Major, student.GraduationYear, student.CreatedAt, student.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert student: %w", err)
		}
		return nil
	})
	if isDuplicateEntryError(err) {
		return ErrDuplicateUser
	}
	return err
}

// GetByUsername retrieves a user and its roles by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// GetByEmail retrieves a user and its roles by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetByID retrieves a user and its roles by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	roles, err := r.roles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return user, nil
}

func (r *UserRepository) roles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role FROM user_roles WHERE user_id = ? ORDER BY role`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

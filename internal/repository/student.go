package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/housingportal/housingportal-go/internal/model"
)

var ErrStudentNotFound = errors.New("student not found")

// StudentRepository handles student profile persistence operations.
type StudentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// GetByID retrieves a student profile by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	query := `SELECT id, name, email, phone, major, graduation_year, created_at, updated_at
		FROM students WHERE id = ?`

	s := &model.Student{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Major, &s.GraduationYear, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	return s, nil
}

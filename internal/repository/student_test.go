package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStudentGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewStudentRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE id = ?")).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "major", "graduation_year", "created_at", "updated_at"}).
			AddRow("s-1", "Alice", "alice@x.com", "555-0100", "CS", 2025, now, now))

	s, err := repo.GetByID(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if s.Name != "Alice" || s.GraduationYear != 2025 {
		t.Fatalf("unexpected student: %+v", s)
	}
}

func TestStudentGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE id = ?")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "major", "graduation_year", "created_at", "updated_at"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

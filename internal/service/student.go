package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/housingportal/housingportal-go/internal/model"
	"github.com/housingportal/housingportal-go/internal/repository"
)

// StudentService serves public student profiles.
type StudentService struct {
	students StudentStore
	listings ListingStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore, listings ListingStore) *StudentService {
	return &StudentService{students: students, listings: listings}
}

// GetStudent returns the public profile of a student.
func (s *StudentService) GetStudent(ctx context.Context, studentID string) (model.StudentDto, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return model.StudentDto{}, ErrStudentNotFound
		}
		return model.StudentDto{}, fmt.Errorf("get student: %w", err)
	}
	return student.ToDto(), nil
}

// ListStudentListings returns the listings owned by a student. Unknown
// students have no listings.
func (s *StudentService) ListStudentListings(ctx context.Context, studentID string) ([]model.ListingDto, error) {
	listings, err := s.listings.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student listings: %w", err)
	}
	return listingsToDto(listings), nil
}

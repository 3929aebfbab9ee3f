package service

import (
	"context"

	"github.com/housingportal/housingportal-go/internal/model"
)

// UserStore is the credential store used by AuthService.
// Implemented by repository.UserRepository.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	CreateWithStudent(ctx context.Context, user *model.User, student *model.Student) error
}

// StudentStore reads student profiles.
// Implemented by repository.StudentRepository.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (*model.Student, error)
}

// ListingStore persists listings. Reads return listings joined with their owner.
// Implemented by repository.ListingRepository.
type ListingStore interface {
	ListAll(ctx context.Context) ([]model.Listing, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Listing, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	ExistsDuplicate(ctx context.Context, title, description, address string) (bool, error)
	Create(ctx context.Context, l *model.Listing) error
	Update(ctx context.Context, l *model.Listing) error
	Delete(ctx context.Context, id string) error
}

// TokenIssuer issues session tokens. Implemented by crypto.TokenIssuer.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

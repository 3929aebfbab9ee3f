package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/housingportal/housingportal-go/internal/model"
	"github.com/housingportal/housingportal-go/internal/repository"
)

// Prices are stored as DECIMAL(12,2).
const priceScale = 2

var maxPrice = decimal.New(1, 10)

// ListingService mediates listing reads and owner-scoped mutations.
// Callers pass the authenticated student ID explicitly.
type ListingService struct {
	listings      ListingStore
	students      StudentStore
	imageOverride string
	now           func() time.Time
}

// NewListingService creates a new ListingService. When imageOverride is
// non-empty it replaces the image returned by Get and Create.
func NewListingService(listings ListingStore, students StudentStore, imageOverride string) *ListingService {
	return &ListingService{
		listings:      listings,
		students:      students,
		imageOverride: imageOverride,
		now:           time.Now,
	}
}

// ListAll returns every listing joined with its owner.
func (s *ListingService) ListAll(ctx context.Context) ([]model.ListingDto, error) {
	listings, err := s.listings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listingsToDto(listings), nil
}

// Get returns a single listing joined with its owner.
func (s *ListingService) Get(ctx context.Context, listingID string) (model.ListingDto, error) {
	l, err := s.find(ctx, listingID)
	if err != nil {
		return model.ListingDto{}, err
	}
	return s.withImageOverride(l.ToDto()), nil
}

// Create adds a listing owned by the caller. An existing listing with the
// same title, description and address is rejected as a duplicate.
func (s *ListingService) Create(ctx context.Context, callerID string, req model.ListingRequest) (model.ListingDto, error) {
	if callerID == "" {
		return model.ListingDto{}, ErrUnauthenticated
	}
	if err := validateListing(req); err != nil {
		return model.ListingDto{}, err
	}

	owner, err := s.students.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return model.ListingDto{}, ErrStudentNotFound
		}
		return model.ListingDto{}, fmt.Errorf("lookup student: %w", err)
	}

	dup, err := s.listings.ExistsDuplicate(ctx, req.Title, req.Description, req.Address)
	if err != nil {
		return model.ListingDto{}, fmt.Errorf("check duplicate listing: %w", err)
	}
	if dup {
		return model.ListingDto{}, ErrListingExists
	}

	now := s.now().UTC()
	l := model.Listing{
		ID:        uuid.NewString(),
		StudentID: owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Owner:     *owner,
	}
	l.Apply(req)

	if err := s.listings.Create(ctx, &l); err != nil {
		return model.ListingDto{}, fmt.Errorf("create listing: %w", err)
	}

	slog.InfoContext(ctx, "listing created", "listing_id", l.ID, "student_id", owner.ID)

	return s.withImageOverride(l.ToDto()), nil
}

// Update overwrites the mutable fields of a listing owned by the caller.
func (s *ListingService) Update(ctx context.Context, callerID, listingID string, req model.ListingRequest) (model.ListingDto, error) {
	if callerID == "" {
		return model.ListingDto{}, ErrUnauthenticated
	}
	if err := validateListing(req); err != nil {
		return model.ListingDto{}, err
	}

	l, err := s.findOwned(ctx, callerID, listingID)
	if err != nil {
		return model.ListingDto{}, err
	}

	l.Apply(req)
	l.UpdatedAt = s.now().UTC()

	if err := s.listings.Update(ctx, l); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return model.ListingDto{}, ErrListingNotFound
		}
		return model.ListingDto{}, fmt.Errorf("update listing: %w", err)
	}

	slog.InfoContext(ctx, "listing updated", "listing_id", l.ID, "student_id", callerID)

	return l.ToDto(), nil
}

// Delete removes a listing owned by the caller and returns its last state.
func (s *ListingService) Delete(ctx context.Context, callerID, listingID string) (model.ListingDto, error) {
	if callerID == "" {
		return model.ListingDto{}, ErrUnauthenticated
	}

	l, err := s.findOwned(ctx, callerID, listingID)
	if err != nil {
		return model.ListingDto{}, err
	}

	if err := s.listings.Delete(ctx, l.ID); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return model.ListingDto{}, ErrListingNotFound
		}
		return model.ListingDto{}, fmt.Errorf("delete listing: %w", err)
	}

	slog.InfoContext(ctx, "listing deleted", "listing_id", l.ID, "student_id", callerID)

	return l.ToDto(), nil
}

func (s *ListingService) find(ctx context.Context, listingID string) (*model.Listing, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

// findOwned loads a listing and checks that callerID is its owner.
func (s *ListingService) findOwned(ctx context.Context, callerID, listingID string) (*model.Listing, error) {
	l, err := s.find(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.StudentID != callerID {
		slog.WarnContext(ctx, "rejected listing mutation by non-owner",
			"listing_id", listingID, "owner_id", l.StudentID, "caller_id", callerID)
		return nil, ErrNotListingOwner
	}
	return l, nil
}

func (s *ListingService) withImageOverride(dto model.ListingDto) model.ListingDto {
	if s.imageOverride != "" {
		dto.Image = s.imageOverride
	}
	return dto
}

func validateListing(req model.ListingRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	switch {
	case req.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidRequest)
	case !req.Price.Equal(req.Price.Round(priceScale)):
		return fmt.Errorf("%w: price must have at most %d decimal places", ErrInvalidRequest, priceScale)
	case req.Price.GreaterThanOrEqual(maxPrice):
		return fmt.Errorf("%w: price must be less than %s", ErrInvalidRequest, maxPrice)
	}
	return nil
}

// listingsToDto converts listings to their API shape. The result is never nil.
func listingsToDto(listings []model.Listing) []model.ListingDto {
	result := make([]model.ListingDto, len(listings))
	for i, l := range listings {
		result[i] = l.ToDto()
	}
	return result
}

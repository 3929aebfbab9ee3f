package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/housingportal/housingportal-go/internal/model"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingRepository handles listing persistence operations.
type ListingRepository struct {
	db *sql.DB
}

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// selectListings joins every listing with its owning student.
const selectListings = `SELECT l.id, l.student_id, l.title, l.description, l.address, l.price,
		l.city, l.state, l.zip, l.image, l.created_at, l.updated_at,
		s.id, s.name, s.email, s.phone, s.major, s.graduation_year, s.created_at, s.updated_at
	FROM listings l
	JOIN students s ON s.id = l.student_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (model.Listing, error) {
	var l model.Listing
	err := row.Scan(
		&l.ID, &l.StudentID, &l.Title, &l.Description, &l.Address, &l.Price,
		&l.City, &l.State, &l.Zip, &l.Image, &l.CreatedAt, &l.UpdatedAt,
		&l.Owner.ID, &l.Owner.Name, &l.Owner.Email, &l.Owner.Phone, &l.Owner.Major,
		&l.Owner.GraduationYear, &l.Owner.CreatedAt, &l.Owner.UpdatedAt,
	)
	return l, err
}

// ListAll retrieves every listing with its owner, newest first.
func (r *ListingRepository) ListAll(ctx context.Context) ([]model.Listing, error) {
	return r.list(ctx, selectListings+` ORDER BY l.created_at DESC`)
}

// ListByStudent retrieves the listings owned by a student, newest first.
func (r *ListingRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Listing, error) {
	return r.list(ctx, selectListings+` WHERE l.student_id = ? ORDER BY l.created_at DESC`, studentID)
}

func (r *ListingRepository) list(ctx context.Context, query string, args ...any) ([]model.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// GetByID retrieves a listing with its owner.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx, selectListings+` WHERE l.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ExistsDuplicate reports whether a listing with the same title, description
// and address already exists.
func (r *ListingRepository) ExistsDuplicate(ctx context.Context, title, description, address string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM listings WHERE title = ? AND description = ? AND address = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, title, description, address).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new listing. ID, StudentID and timestamps must be set.
func (r *ListingRepository) Create(ctx context.Context, l *model.Listing) error {
	query := `INSERT INTO listings
		(id, student_id, title, description, address, price, city, state, zip, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.StudentID, l.Title, l.Description, l.Address, l.Price,
		l.City, l.State, l.Zip, l.Image, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

// Update overwrites the mutable fields of a listing. The owner column is
// never written. Concurrent updates are last-writer-wins. Returns
// ErrListingNotFound when the row no longer exists; NewDB enables
// clientFoundRows so an update that changes nothing still counts the row.
func (r *ListingRepository) Update(ctx context.Context, l *model.Listing) error {
	query := `UPDATE listings SET
		title = ?, description = ?, address = ?, price = ?,
		city = ?, state = ?, zip = ?, image = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		l.Title, l.Description, l.Address, l.Price,
		l.City, l.State, l.Zip, l.Image, l.UpdatedAt,
		l.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrListingNotFound
	}

	return nil
}

// Delete removes a listing.
func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrListingNotFound
	}

	return nil
}

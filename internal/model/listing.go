package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Listing represents a housing listing in the database.
// Owner is populated by queries that join the students table.
type Listing struct {
	ID          string
	StudentID   string
	Title       string
	Description string
	Address     string
	Price       decimal.Decimal
	City        string
	State       string
	Zip         string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Owner       Student
}

// ListingRequest carries the mutable fields of a listing on create and update.
// Any studentDto sent by the client is ignored; the owner comes from the token.
type ListingRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required,max=4000"`
	Address     string          `json:"address" validate:"required,max=300"`
	Price       decimal.Decimal `json:"price"`
	City        string          `json:"city" validate:"max=100"`
	State       string          `json:"state" validate:"max=50"`
	Zip         string          `json:"zip" validate:"max=20"`
	Image       string          `json:"image" validate:"omitempty,url,max=2048"`
}

// ListingDto is the API representation of a Listing joined with its owner.
type ListingDto struct {
	ListingID   string          `json:"listingId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	Price       decimal.Decimal `json:"price"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Zip         string          `json:"zip"`
	Image       string          `json:"image"`
	StudentDto  StudentDto      `json:"studentDto"`
}

// ToDto converts the listing and its joined owner to the API shape.
func (l Listing) ToDto() ListingDto {
	return ListingDto{
		ListingID:   l.ID,
		Title:       l.Title,
		Description: l.Description,
		Address:     l.Address,
		Price:       l.Price,
		City:        l.City,
		State:       l.State,
		Zip:         l.Zip,
		Image:       l.Image,
		StudentDto:  l.Owner.ToDto(),
	}
}

// Apply overwrites the mutable fields with the request values.
// StudentID is never changed.
func (l *Listing) Apply(req ListingRequest) {
	l.Title = req.Title
	l.Description = req.Description
	l.Address = req.Address
	l.Price = req.Price
	l.City = req.City
	l.State = req.State
	l.Zip = req.Zip
	l.Image = req.Image
}

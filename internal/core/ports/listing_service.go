package ports

import (
	"context"

	"github.com/AmedoFerguson/backend/internal/core/domain"
)

// CreateListingInput carries all data needed to create a listing. OwnerID
// and image URL are never part of the input: the owner is always the
// authenticated requester and the URL only ever comes from the upload
// gateway.
type CreateListingInput struct {
	Brand       string
	Model       string
	Price       string
	Description string
	// ImageBytes, when non-nil, is uploaded to the image gateway before
	// the listing is persisted.
	ImageBytes []byte
	ImageName  string
}

// UpdateListingInput uses pointer fields for partial-update semantics:
// nil means "leave unchanged".
type UpdateListingInput struct {
	Brand       *string
	Model       *string
	Price       *string
	Description *string
	ImageBytes  []byte
	ImageName   string
}

// ListListingsInput carries pagination parameters for the public list.
type ListListingsInput struct {
	Page     int
	PageSize int
}

// ListListingsResult is one page of listings plus pagination metadata.
type ListListingsResult struct {
	Items      []domain.Listing
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// ModelEntry is one distinct laptop model with its position in the
// enumeration (0-based, first-seen order).
type ModelEntry struct {
	ID    int    `json:"id"`
	Model string `json:"model"`
}

// ListingService defines use-case operations for laptop listings.
type ListingService interface {
	Create(ctx context.Context, input CreateListingInput, requesterID int64) (*domain.Listing, error)
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, id int64, input UpdateListingInput, requesterID int64) (*domain.Listing, error)
	Delete(ctx context.Context, id int64, requesterID int64) error
	List(ctx context.Context, input ListListingsInput) (*ListListingsResult, error)
	DistinctModels(ctx context.Context) ([]ModelEntry, error)
}

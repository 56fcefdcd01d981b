package ports

import (
	"context"

	"github.com/AmedoFerguson/backend/internal/core/domain"
)

// ListingRepository defines persistence operations for laptop listings.
type ListingRepository interface {
	// Create persists a new listing and returns it with the generated id.
	Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	FindByID(ctx context.Context, id int64) (*domain.Listing, error)
	// Update overwrites the stored listing identified by listing.ID.
	Update(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	Delete(ctx context.Context, id int64) error
	// List returns one page of listings in ascending id order plus the
	// total count across all pages.
	List(ctx context.Context, page, limit int) ([]domain.Listing, int64, error)
	// DistinctModels returns every distinct model value in first-seen
	// (lowest listing id) order.
	DistinctModels(ctx context.Context) ([]string, error)
}

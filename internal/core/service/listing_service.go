package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AmedoFerguson/backend/internal/core/domain"
	"github.com/AmedoFerguson/backend/internal/core/ports"
)

const (
	defaultPageSize = 6
	maxPageSize     = 24
)

// ListingService implements listing CRUD with owner-only mutation and the
// image upload side effect. Mutations follow a strict order: validate,
// upload image (if any), persist. A failed gate leaves the store untouched.
type ListingService struct {
	repo     ports.ListingRepository
	uploader ports.ImageUploader
	cache    ports.ModelsCache
	logger   zerolog.Logger
}

func NewListingService(repo ports.ListingRepository, uploader ports.ImageUploader, cache ports.ModelsCache, logger zerolog.Logger) *ListingService {
	return &ListingService{repo: repo, uploader: uploader, cache: cache, logger: logger}
}

// Create validates the payload, resolves the optional image to a hosted URL
// and persists the listing with the requester as owner.
func (s *ListingService) Create(ctx context.Context, input ports.CreateListingInput, requesterID int64) (*domain.Listing, error) {
	fields := map[string]string{}
	requireField(fields, "brand", input.Brand)
	requireField(fields, "model", input.Model)
	requireField(fields, "description", input.Description)
	if msg := validatePrice(input.Price); msg != "" {
		fields["price"] = msg
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	imageURL, err := resolveImage(ctx, s.uploader, s.logger, input.ImageBytes, input.ImageName)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		Brand:       strings.TrimSpace(input.Brand),
		Model:       strings.TrimSpace(input.Model),
		Price:       normalizePrice(input.Price),
		Description: input.Description,
		ImageURL:    imageURL,
		OwnerID:     requesterID,
	}

	created, err := s.repo.Create(ctx, listing)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", requesterID).Msg("failed to create listing")
		return nil, err
	}

	s.invalidateModels(ctx)
	s.logger.Info().Int64("listing_id", created.ID).Int64("owner_id", requesterID).Msg("listing created")
	return created, nil
}

// Get retrieves a single listing by id.
func (s *ListingService) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update to a listing owned by the requester.
// Fields left nil keep their stored values; ownership is immutable.
func (s *ListingService) Update(ctx context.Context, id int64, input ports.UpdateListingInput, requesterID int64) (*domain.Listing, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwner(requesterID) {
		return nil, domain.ErrForbidden
	}

	fields := map[string]string{}
	if input.Brand != nil {
		requireField(fields, "brand", *input.Brand)
	}
	if input.Model != nil {
		requireField(fields, "model", *input.Model)
	}
	if input.Description != nil {
		requireField(fields, "description", *input.Description)
	}
	if input.Price != nil {
		if msg := validatePrice(*input.Price); msg != "" {
			fields["price"] = msg
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	imageURL, err := resolveImage(ctx, s.uploader, s.logger, input.ImageBytes, input.ImageName)
	if err != nil {
		return nil, err
	}

	if input.Brand != nil {
		existing.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Model != nil {
		existing.Model = strings.TrimSpace(*input.Model)
	}
	if input.Price != nil {
		existing.Price = normalizePrice(*input.Price)
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if imageURL != "" {
		existing.ImageURL = imageURL
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.logger.Error().Err(err).Int64("listing_id", id).Msg("failed to update listing")
		return nil, err
	}

	s.invalidateModels(ctx)
	s.logger.Info().Int64("listing_id", id).Int64("owner_id", requesterID).Msg("listing updated")
	return updated, nil
}

// Delete permanently removes a listing owned by the requester.
func (s *ListingService) Delete(ctx context.Context, id int64, requesterID int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsOwner(requesterID) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("listing_id", id).Msg("failed to delete listing")
		return err
	}

	s.invalidateModels(ctx)
	s.logger.Info().Int64("listing_id", id).Int64("owner_id", requesterID).Msg("listing deleted")
	return nil
}

// List returns one page of listings. Page size defaults to 6 and is capped
// at 24 regardless of what the client requests.
func (s *ListingService) List(ctx context.Context, input ports.ListListingsInput) (*ports.ListListingsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	items, total, err := s.repo.List(ctx, page, size)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ports.ListListingsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}, nil
}

// DistinctModels enumerates every distinct model value, each paired with a
// 0-based index in first-seen order. The result is cached until the next
// listing write.
func (s *ListingService) DistinctModels(ctx context.Context) ([]ports.ModelEntry, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("models cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	models, err := s.repo.DistinctModels(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.ModelEntry, 0, len(models))
	for i, m := range models {
		entries = append(entries, ports.ModelEntry{ID: i, Model: m})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.logger.Warn().Err(err).Msg("models cache write failed")
		}
	}
	return entries, nil
}

func (s *ListingService) invalidateModels(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("models cache invalidation failed")
	}
}

func requireField(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = name + " is required"
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AmedoFerguson/backend/internal/core/domain"
	"github.com/AmedoFerguson/backend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubListingRepo struct {
	byID   map[int64]*domain.Listing
	lastID int64
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{byID: make(map[int64]*domain.Listing)}
}

func (r *stubListingRepo) Create(_ context.Context, listing *domain.Listing) (*domain.Listing, error) {
	r.lastID++
	clone := *listing
	clone.ID = r.lastID
	r.byID[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id int64) (*domain.Listing, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubListingRepo) Update(_ context.Context, listing *domain.Listing) (*domain.Listing, error) {
	if _, ok := r.byID[listing.ID]; !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *listing
	r.byID[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubListingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubListingRepo) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *stubListingRepo) List(_ context.Context, page, limit int) ([]domain.Listing, int64, error) {
	ids := r.sortedIDs()
	total := int64(len(ids))

	skip := (page - 1) * limit
	if skip > len(ids) {
		return []domain.Listing{}, total, nil
	}
	end := skip + limit
	if end > len(ids) {
		end = len(ids)
	}

	items := make([]domain.Listing, 0, end-skip)
	for _, id := range ids[skip:end] {
		items = append(items, *r.byID[id])
	}
	return items, total, nil
}

func (r *stubListingRepo) DistinctModels(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	models := []string{}
	for _, id := range r.sortedIDs() {
		m := r.byID[id].Model
		if !seen[m] {
			seen[m] = true
			models = append(models, m)
		}
	}
	return models, nil
}

type stubUploader struct {
	url   string
	err   error
	calls int
}

func (u *stubUploader) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

type stubModelsCache struct {
	entries       []ports.ModelEntry
	sets          int
	invalidations int
}

func (c *stubModelsCache) Get(_ context.Context) ([]ports.ModelEntry, error) {
	return c.entries, nil
}

func (c *stubModelsCache) Set(_ context.Context, entries []ports.ModelEntry) error {
	c.sets++
	c.entries = entries
	return nil
}

func (c *stubModelsCache) Invalidate(_ context.Context) error {
	c.invalidations++
	c.entries = nil
	return nil
}

func newListingService(repo *stubListingRepo, uploader *stubUploader) *ListingService {
	return NewListingService(repo, uploader, nil, zerolog.Nop())
}

func seedListing(t *testing.T, svc *ListingService, ownerID int64, model string) *domain.Listing {
	t.Helper()
	l, err := svc.Create(context.Background(), ports.CreateListingInput{
		Brand:       "Dell",
		Model:       model,
		Price:       "999.99",
		Description: "good",
	}, ownerID)
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return l
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestListingService_Create_Success(t *testing.T) {
	repo := newStubListingRepo()
	svc := newListingService(repo, &stubUploader{})

	l, err := svc.Create(context.Background(), ports.CreateListingInput{
		Brand:       "Dell",
		Model:       "XPS13",
		Price:       "999.99",
		Description: "good",
	}, 1)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if l.OwnerID != 1 {
		t.Fatalf("expected owner 1, got %d", l.OwnerID)
	}
	if l.ImageURL != "" {
		t.Fatalf("expected no image url, got %q", l.ImageURL)
	}
	if l.Price != "999.99" {
		t.Fatalf("unexpected price: %q", l.Price)
	}
}

func TestListingService_Create_CollectsAllFieldErrors(t *testing.T) {
	repo := newStubListingRepo()
	uploader := &stubUploader{}
	svc := newListingService(repo, uploader)

	_, err := svc.Create(context.Background(), ports.CreateListingInput{
		Price:      "-5",
		ImageBytes: []byte("img"),
	}, 1)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"brand", "model", "description", "price"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("expected error for field %q, got %v", field, ve.Fields)
		}
	}
	if uploader.calls != 0 {
		t.Fatalf("uploader must not be called before validation passes")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing should be persisted")
	}
}

func TestListingService_Create_ImageUploadFailure(t *testing.T) {
	repo := newStubListingRepo()
	uploader := &stubUploader{err: &domain.ImageUploadError{Detail: "rate limited"}}
	svc := newListingService(repo, uploader)

	_, err := svc.Create(context.Background(), ports.CreateListingInput{
		Brand:       "Dell",
		Model:       "XPS13",
		Price:       "999.99",
		Description: "good",
		ImageBytes:  []byte("img"),
	}, 1)

	var ue *domain.ImageUploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected ImageUploadError, got %v", err)
	}
	if ue.Detail != "rate limited" {
		t.Fatalf("detail not propagated: %q", ue.Detail)
	}
	if uploader.calls != 1 {
		t.Fatalf("gateway must be called exactly once, got %d", uploader.calls)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("listing must not be created when upload fails")
	}
}

func TestListingService_Create_WithImage(t *testing.T) {
	repo := newStubListingRepo()
	uploader := &stubUploader{url: "https://i.imgur.com/abc.png"}
	svc := newListingService(repo, uploader)

	l, err := svc.Create(context.Background(), ports.CreateListingInput{
		Brand:       "Dell",
		Model:       "XPS13",
		Price:       "999.99",
		Description: "good",
		ImageBytes:  []byte("img"),
		ImageName:   "laptop.png",
	}, 1)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if l.ImageURL != "https://i.imgur.com/abc.png" {
		t.Fatalf("image url not injected: %q", l.ImageURL)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete authorization
// ---------------------------------------------------------------------------

func TestListingService_Update_Forbidden(t *testing.T) {
	repo := newStubListingRepo()
	svc := newListingService(repo, &stubUploader{})
	l := seedListing(t, svc, 1, "XPS13")

	price := "1.00"
	_, err := svc.Update(context.Background(), l.ID, ports.UpdateListingInput{Price: &price}, 2)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), l.ID)
	if stored.Price != "999.99" {
		t.Fatalf("record must be unchanged, got price %q", stored.Price)
	}
}

func TestListingService_Update_Partial(t *testing.T) {
	repo := newStubListingRepo()
	svc := newListingService(repo, &stubUploader{})
	l := seedListing(t, svc, 1, "XPS13")

	price := "1500"
	updated, err := svc.Update(context.Background(), l.ID, ports.UpdateListingInput{Price: &price}, 1)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Price != "1500.00" {
		t.Fatalf("expected normalized price 1500.00, got %q", updated.Price)
	}
	if updated.Brand != "Dell" || updated.Model != "XPS13" || updated.Description != "good" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.OwnerID != 1 {
		t.Fatalf("owner must be immutable")
	}
}

func TestListingService_Update_NotFound(t *testing.T) {
	svc := newListingService(newStubListingRepo(), &stubUploader{})

	_, err := svc.Update(context.Background(), 42, ports.UpdateListingInput{}, 1)
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestListingService_Update_ImageFailureLeavesRecordUntouched(t *testing.T) {
	repo := newStubListingRepo()
	uploader := &stubUploader{}
	svc := newListingService(repo, uploader)
	l := seedListing(t, svc, 1, "XPS13")

	uploader.err = &domain.ImageUploadError{Detail: "boom"}
	price := "1.00"
	_, err := svc.Update(context.Background(), l.ID, ports.UpdateListingInput{
		Price:      &price,
		ImageBytes: []byte("img"),
	}, 1)

	var ue *domain.ImageUploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected ImageUploadError, got %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), l.ID)
	if stored.Price != "999.99" || stored.ImageURL != "" {
		t.Fatalf("record must be unchanged after failed upload: %+v", stored)
	}
}

func TestListingService_Delete_Forbidden(t *testing.T) {
	repo := newStubListingRepo()
	svc := newListingService(repo, &stubUploader{})
	l := seedListing(t, svc, 1, "XPS13")

	if err := svc.Delete(context.Background(), l.ID, 2); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), l.ID); err != nil {
		t.Fatalf("listing must still exist: %v", err)
	}
}

func TestListingService_Delete_Success(t *testing.T) {
	repo := newStubListingRepo()
	svc := newListingService(repo, &stubUploader{})
	l := seedListing(t, svc, 1, "XPS13")

	if err := svc.Delete(context.Background(), l.ID, 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), l.ID); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("listing must be gone, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List / pagination
// ---------------------------------------------------------------------------

func TestListingService_List_PageSizeCapAndDefaults(t *testing.T) {
	repo := newStubListingRepo()
	svc := newListingService(repo, &stubUploader{})
	for i := 0; i < 30; i++ {
		seedListing(t, svc, 1, fmt.Sprintf("Model-%d", i))
	}

	// Default page size is 6.
	result, err := svc.List(context.Background(), ports.ListListingsInput{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 6 || result.PageSize != 6 {
		t.Fatalf("expected default page of 6, got %d", len(result.Items))
	}
	if result.Total != 30 || result.TotalPages != 5 {
		t.Fatalf("unexpected totals: %+v", result)
	}

	// page_size beyond the cap is clamped to 24.
	result, err = svc.List(context.Background(), ports.ListListingsInput{Page: 1, PageSize: 100})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 24 || result.PageSize != 24 {
		t.Fatalf("expected capped page of 24, got %d", len(result.Items))
	}

	result, err = svc.List(context.Background(), ports.ListListingsInput{Page: 2, PageSize: 24})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 6 {
		t.Fatalf("expected 6 items on page 2, got %d", len(result.Items))
	}
}

// ---------------------------------------------------------------------------
// Distinct models
// ---------------------------------------------------------------------------

func TestListingService_DistinctModels_Idempotent(t *testing.T) {
	repo := newStubListingRepo()
	svc := newListingService(repo, &stubUploader{})
	seedListing(t, svc, 1, "XPS13")
	seedListing(t, svc, 1, "ThinkPad")
	seedListing(t, svc, 2, "XPS13")

	first, err := svc.DistinctModels(context.Background())
	if err != nil {
		t.Fatalf("DistinctModels returned error: %v", err)
	}
	second, err := svc.DistinctModels(context.Background())
	if err != nil {
		t.Fatalf("DistinctModels returned error: %v", err)
	}

	want := []ports.ModelEntry{{ID: 0, Model: "XPS13"}, {ID: 1, Model: "ThinkPad"}}
	for i, entry := range want {
		if first[i] != entry || second[i] != entry {
			t.Fatalf("expected %+v at %d, got %+v / %+v", entry, i, first[i], second[i])
		}
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 entries, got %d / %d", len(first), len(second))
	}
}

func TestListingService_DistinctModels_Empty(t *testing.T) {
	svc := newListingService(newStubListingRepo(), &stubUploader{})

	entries, err := svc.DistinctModels(context.Background())
	if err != nil {
		t.Fatalf("DistinctModels returned error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", entries)
	}
}

func TestListingService_DistinctModels_CacheInvalidatedOnWrite(t *testing.T) {
	repo := newStubListingRepo()
	cache := &stubModelsCache{}
	svc := NewListingService(repo, &stubUploader{}, cache, zerolog.Nop())

	seedListing(t, svc, 1, "XPS13")
	if cache.invalidations != 1 {
		t.Fatalf("create must invalidate the cache, got %d", cache.invalidations)
	}

	if _, err := svc.DistinctModels(context.Background()); err != nil {
		t.Fatalf("DistinctModels returned error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache write after miss, got %d", cache.sets)
	}

	// Cached result is served without touching the repository order again.
	entries, err := svc.DistinctModels(context.Background())
	if err != nil {
		t.Fatalf("DistinctModels returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Model != "XPS13" {
		t.Fatalf("unexpected cached entries: %v", entries)
	}
}

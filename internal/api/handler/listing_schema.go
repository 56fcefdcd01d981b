package handler

import (
	"github.com/AmedoFerguson/backend/internal/core/domain"
	"github.com/AmedoFerguson/backend/internal/core/ports"
)

// --- Request / Response types ---

// createListingRequest accepts both JSON and multipart form payloads; the
// optional image file travels outside this struct as a form file part.
// Owner and image_url are never client-settable.
type createListingRequest struct {
	Brand       string `json:"brand" form:"brand"`
	Model       string `json:"model" form:"model"`
	Price       string `json:"price" form:"price"`
	Description string `json:"description" form:"description"`
}

// updateListingRequest uses pointers so absent fields keep their stored
// values (PUT and PATCH are both partial updates).
type updateListingRequest struct {
	Brand       *string `json:"brand" form:"brand"`
	Model       *string `json:"model" form:"model"`
	Price       *string `json:"price" form:"price"`
	Description *string `json:"description" form:"description"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type listListingsResponse struct {
	Data       []domain.Listing   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toUpdateInput(req updateListingRequest, imageBytes []byte, imageName string) ports.UpdateListingInput {
	return ports.UpdateListingInput{
		Brand:       req.Brand,
		Model:       req.Model,
		Price:       req.Price,
		Description: req.Description,
		ImageBytes:  imageBytes,
		ImageName:   imageName,
	}
}

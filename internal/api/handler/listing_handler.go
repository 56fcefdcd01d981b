package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AmedoFerguson/backend/internal/api/metrics"
	"github.com/AmedoFerguson/backend/internal/core/domain"
	"github.com/AmedoFerguson/backend/internal/core/ports"
)

// ListingHandler handles HTTP requests for laptop listing operations.
type ListingHandler struct {
	service ports.ListingService
}

func NewListingHandler(service ports.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// List handles GET /items, public and paginated.
//
// @Summary      List laptop listings
// @Tags         items
// @Produce      json
// @Param        page       query     int  false  "Page number (1-based)"
// @Param        page_size  query     int  false  "Items per page (default 6, max 24)"
// @Success      200        {object}  listListingsResponse
// @Failure      500        {object}  map[string]string
// @Router       /items/ [get]
func (h *ListingHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	result, err := h.service.List(c.Request().Context(), ports.ListListingsInput{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listListingsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
		},
	})
}

// Models handles GET /items/models, every distinct laptop model.
//
// @Summary      List distinct laptop models
// @Tags         items
// @Produce      json
// @Success      200  {array}  ports.ModelEntry
// @Failure      500  {object}  map[string]string
// @Router       /items/models/ [get]
func (h *ListingHandler) Models(c echo.Context) error {
	entries, err := h.service.DistinctModels(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Get handles GET /items/:id.
//
// @Summary      Get a listing by id
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/ [get]
func (h *ListingHandler) Get(c echo.Context) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}

	listing, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Create handles POST /items.
//
// @Summary      Create a listing
// @Tags         items
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing fields"
// @Success      201   {object}  domain.Listing
// @Failure      400   {object}  map[string]map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /items/ [post]
func (h *ListingHandler) Create(c echo.Context) error {
	requesterID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	imageBytes, imageName, err := formImage(c, "image")
	if err != nil {
		return err
	}

	listing, err := h.service.Create(c.Request().Context(), ports.CreateListingInput{
		Brand:       req.Brand,
		Model:       req.Model,
		Price:       req.Price,
		Description: req.Description,
		ImageBytes:  imageBytes,
		ImageName:   imageName,
	}, requesterID)
	if err != nil {
		return err
	}

	metrics.ListingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, listing)
}

// Update handles PUT and PATCH /items/:id. Both verbs apply partial
// updates: absent fields keep their stored values.
//
// @Summary      Update a listing (owner only)
// @Tags         items
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Listing id"
// @Param        body  body      updateListingRequest  true  "Fields to change"
// @Success      200   {object}  domain.Listing
// @Failure      400   {object}  map[string]map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /items/{id}/ [put]
func (h *ListingHandler) Update(c echo.Context) error {
	requesterID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	id, err := listingID(c)
	if err != nil {
		return err
	}

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	imageBytes, imageName, err := formImage(c, "image")
	if err != nil {
		return err
	}

	listing, err := h.service.Update(c.Request().Context(), id, toUpdateInput(req, imageBytes, imageName), requesterID)
	metrics.ListingMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Delete handles DELETE /items/:id.
//
// @Summary      Delete a listing (owner only)
// @Tags         items
// @Security     BearerAuth
// @Param        id  path  int  true  "Listing id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/ [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	requesterID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	id, err := listingID(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), id, requesterID)
	metrics.ListingMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listingID parses the :id path parameter. A non-numeric id cannot match
// any listing, so it reports not-found rather than bad-request.
func listingID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrListingNotFound
	}
	return id, nil
}

// formImage reads an optional uploaded file from a multipart request.
// JSON requests and multipart requests without the part both yield nil.
func formImage(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
	}
	return data, fh.Filename, nil
}

func mutationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrListingNotFound):
		return "not_found"
	default:
		var ve *domain.ValidationError
		var ue *domain.ImageUploadError
		if errors.As(err, &ve) || errors.As(err, &ue) {
			return "invalid"
		}
		return "error"
	}
}

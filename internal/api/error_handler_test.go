package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/AmedoFerguson/backend/internal/core/domain"
)

func invoke(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_ValidationFieldMap(t *testing.T) {
	rec, body := invoke(t, domain.NewValidationError(map[string]string{
		"brand": "brand is required",
		"price": "price must not be negative",
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors map, got %v", body)
	}
	if len(fields) != 2 {
		t.Fatalf("all field errors must be reported, got %v", fields)
	}
}

func TestErrorHandler_ImageUploadDetail(t *testing.T) {
	rec, body := invoke(t, &domain.ImageUploadError{Detail: "rate limited"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors map, got %v", body)
	}
	if fields["image_url"] != "failed to upload image: rate limited" {
		t.Fatalf("gateway detail not propagated: %v", fields)
	}
}

func TestErrorHandler_DomainErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrListingNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrUserExists, http.StatusConflict},
	}

	for _, tc := range cases {
		rec, body := invoke(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body["error"] == "" {
			t.Errorf("%v: missing error message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	rec, _ := invoke(t, errors.Join(errors.New("context"), domain.ErrForbidden))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrapped domain errors must still map, got %d", rec.Code)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	rec, body := invoke(t, errors.New("sensitive database detail"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal details must not leak: %v", body)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := invoke(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "missing authorization header" {
		t.Fatalf("unexpected message: %v", body)
	}
}

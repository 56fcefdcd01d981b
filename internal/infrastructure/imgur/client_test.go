package imgur

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AmedoFerguson/backend/internal/core/domain"
)

func TestClient_Upload_Success(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("expected multipart body: %v", err)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("missing image part: %v", err)
			return
		}
		defer file.Close()
		if header.Filename != "laptop.png" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		w.Write([]byte(`{"data":{"link":"https://i.imgur.com/abc123.png"},"success":true,"status":200}`))
	}))
	defer srv.Close()

	client := NewClient("client-id", srv.URL, zerolog.Nop())
	link, err := client.Upload(context.Background(), []byte("png-bytes"), "laptop.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link != "https://i.imgur.com/abc123.png" {
		t.Fatalf("unexpected link %q", link)
	}
	if gotAuth != "Client-ID client-id" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
}

func TestClient_Upload_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"data":{"error":"Bad Request"},"success":false,"status":400}`))
	}))
	defer srv.Close()

	client := NewClient("client-id", srv.URL, zerolog.Nop())
	_, err := client.Upload(context.Background(), []byte("bytes"), "x.png")

	var ue *domain.ImageUploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected ImageUploadError, got %v", err)
	}
	if ue.Detail != "Bad Request" {
		t.Fatalf("gateway detail not propagated: %q", ue.Detail)
	}
}

func TestClient_Upload_StructuredErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"data":{"error":{"message":"Too many requests","code":429}},"success":false,"status":429}`))
	}))
	defer srv.Close()

	client := NewClient("client-id", srv.URL, zerolog.Nop())
	_, err := client.Upload(context.Background(), []byte("bytes"), "x.png")

	var ue *domain.ImageUploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected ImageUploadError, got %v", err)
	}
	if ue.Detail != "Too many requests" {
		t.Fatalf("expected nested message, got %q", ue.Detail)
	}
}

func TestClient_Upload_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream error</html>"))
	}))
	defer srv.Close()

	client := NewClient("client-id", srv.URL, zerolog.Nop())
	_, err := client.Upload(context.Background(), []byte("bytes"), "x.png")

	var ue *domain.ImageUploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected ImageUploadError, got %v", err)
	}
	if !strings.Contains(ue.Detail, "502") {
		t.Fatalf("detail should mention the gateway status, got %q", ue.Detail)
	}
}

func TestClient_Upload_MissingLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{},"success":true,"status":200}`))
	}))
	defer srv.Close()

	client := NewClient("client-id", srv.URL, zerolog.Nop())
	_, err := client.Upload(context.Background(), []byte("bytes"), "x.png")

	var ue *domain.ImageUploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected ImageUploadError, got %v", err)
	}
}

func TestClient_Upload_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient("client-id", srv.URL, zerolog.Nop())
	_, err := client.Upload(context.Background(), []byte("bytes"), "x.png")

	var ue *domain.ImageUploadError
	if !errors.As(err, &ue) {
		t.Fatalf("transport failures must surface as ImageUploadError, got %v", err)
	}
}

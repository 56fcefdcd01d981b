// Package imgur implements the image upload gateway against the Imgur API.
// The service layer only sees a hosted URL or an ImageUploadError carrying
// the gateway's failure detail; uploads are never retried here.
package imgur

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AmedoFerguson/backend/internal/api/metrics"
	"github.com/AmedoFerguson/backend/internal/core/domain"
)

const (
	defaultUploadURL = "https://api.imgur.com/3/image"
	uploadTimeout    = 30 * time.Second
)

type Client struct {
	httpClient *http.Client
	clientID   string
	uploadURL  string
	logger     zerolog.Logger
}

func NewClient(clientID, uploadURL string, logger zerolog.Logger) *Client {
	if uploadURL == "" {
		uploadURL = defaultUploadURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: uploadTimeout},
		clientID:   clientID,
		uploadURL:  uploadURL,
		logger:     logger,
	}
}

type uploadResponse struct {
	Data struct {
		Link  string          `json:"link"`
		Error json.RawMessage `json:"error"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload posts the image as multipart form data and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if filename == "" {
		filename = "image"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", c.fail(err.Error())
	}
	if _, err := part.Write(data); err != nil {
		return "", c.fail(err.Error())
	}
	if err := writer.Close(); err != nil {
		return "", c.fail(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", c.fail(err.Error())
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Client-ID "+c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.fail(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail(err.Error())
	}

	var parsed uploadResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", c.fail(fmt.Sprintf("unexpected response (status %d)", resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK || !parsed.Success {
		return "", c.fail(c.errorDetail(parsed, resp.StatusCode))
	}
	// Anything non-URL-shaped counts as a failure, whatever the status says.
	if !strings.HasPrefix(parsed.Data.Link, "http") {
		return "", c.fail("gateway returned no image link")
	}

	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
	return parsed.Data.Link, nil
}

func (c *Client) fail(detail string) error {
	metrics.ImageUploadsTotal.WithLabelValues("failure").Inc()
	c.logger.Warn().Str("detail", detail).Msg("imgur upload failed")
	return &domain.ImageUploadError{Detail: detail}
}

// errorDetail digs the human-readable message out of the imgur error
// payload, which is either a plain string or {"message": "..."}.
func (c *Client) errorDetail(parsed uploadResponse, statusCode int) string {
	if len(parsed.Data.Error) > 0 {
		var msg string
		if err := json.Unmarshal(parsed.Data.Error, &msg); err == nil && msg != "" {
			return msg
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(parsed.Data.Error, &obj); err == nil && obj.Message != "" {
			return obj.Message
		}
	}
	return fmt.Sprintf("upload rejected with status %d", statusCode)
}

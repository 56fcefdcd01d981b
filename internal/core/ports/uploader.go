package ports

import "context"

// ImageUploader sends raw image bytes to an external hosting service and
// returns the hosted URL. Implementations must call the service at most
// once per invocation and never retry; failures surface as
// *domain.ImageUploadError carrying the gateway's detail.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

package upstream

import (
	"context"
	"net/url"

	"go.uber.org/zap"
)

// ImageFile describes one downloadable file of an image.
type ImageFile struct {
	SHA1        string `json:"sha1"`
	Size        int64  `json:"size"`
	Compression string `json:"compression"`
}

// Image is the stable response shape for a machine image.
type Image struct {
	UUID         string         `json:"uuid"`
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	OS           string         `json:"os"`
	State        string         `json:"state"`
	Public       bool           `json:"public"`
	PublishedAt  string         `json:"published_at,omitempty"`
	Owner        string         `json:"owner,omitempty"`
	Files        []ImageFile    `json:"files,omitempty"`
	Requirements map[string]any `json:"requirements,omitempty"`
	Tags         map[string]any `json:"tags,omitempty"`
}

// IMGAPI talks to the image catalog service.
type IMGAPI struct {
	client *Client
}

// NewIMGAPI builds the client.
func NewIMGAPI(baseURL string, logger *zap.Logger) *IMGAPI {
	return &IMGAPI{client: NewClient("imgapi", baseURL, logger)}
}

// ListImages fetches the image catalog.
func (s *IMGAPI) ListImages(ctx context.Context) ([]Image, error) {
	var images []Image
	if err := s.client.GetJSON(ctx, "/images", &images); err != nil {
		return nil, err
	}
	return images, nil
}

// GetImage fetches one image by uuid.
func (s *IMGAPI) GetImage(ctx context.Context, uuid string) (*Image, error) {
	var image Image
	if err := s.client.GetJSON(ctx, "/images/"+url.PathEscape(uuid), &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// UpdateImage applies a partial update and returns the updated image. The
// image catalog takes updates as a POST against the image resource.
func (s *IMGAPI) UpdateImage(ctx context.Context, uuid string, changes map[string]any) (*Image, error) {
	if err := s.client.PostJSON(ctx, "/images/"+url.PathEscape(uuid), changes, nil); err != nil {
		return nil, err
	}
	return s.GetImage(ctx, uuid)
}

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore stores attachments in Cloudinary, keyed by public ID.
type CloudinaryStore struct {
	cld  *cloudinary.Cloudinary
	http *http.Client
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryStore{
		cld:  cld,
		http: http.DefaultClient,
	}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     key,
		ResourceType: "auto", // Automatically detect image, video, or raw
	})
	if err != nil {
		return fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return nil
}

func (s *CloudinaryStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	img, err := s.cld.Image(key)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset URL: %w", err)
	}
	url, err := img.String()
	if err != nil {
		return nil, fmt.Errorf("failed to build asset URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Cloudinary: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("cloudinary fetch returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

package storage

import (
	"context"
	"fmt"
	"io"

	"telecare/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements DocumentStorage on Cloudinary.
type CloudinaryStorage struct {
	cld        *cloudinary.Cloudinary
	baseFolder string
}

// NewCloudinaryStorage builds a Cloudinary-backed document store from the
// application configuration.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, baseFolder: "consultations"}, nil
}

// Upload stores the file under consultations/<consultationID>/ and returns
// the secure download URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, filename, consultationID string) (string, error) {
	useFilename := true
	params := uploader.UploadParams{
		Folder:           fmt.Sprintf("%s/%s", s.baseFolder, consultationID),
		FilenameOverride: filename,
		UseFilename:      &useFilename,
		ResourceType:     "auto",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no URL returned for uploaded document")
	}
	return result.SecureURL, nil
}

// Delete removes an uploaded document by its Cloudinary public ID.
func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

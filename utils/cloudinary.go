package utils

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageStore uploads and removes product images on the hosting service.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, filename string) (url, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryStore is the Cloudinary-backed ImageStore. Construct once at
// startup and inject; the underlying client is safe for concurrent use.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a CloudinaryStore from CLOUDINARY_NAME,
// CLOUDINARY_API_KEY, and CLOUDINARY_API_SECRET.
func NewCloudinaryStore() (*CloudinaryStore, error) {
	name := os.Getenv("CLOUDINARY_NAME")
	key := os.Getenv("CLOUDINARY_API_KEY")
	secret := os.Getenv("CLOUDINARY_API_SECRET")
	if name == "" || key == "" || secret == "" {
		return nil, errors.New("cloudinary credentials not set")
	}

	cld, err := cloudinary.NewFromParams(name, key, secret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, filename string) (string, string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:           "farmers-market",
		FilenameOverride: filename,
		UseFilename:      api.Bool(true),
		UniqueFilename:   api.Bool(false),
		Overwrite:        api.Bool(true),
	})
	if err != nil {
		return "", "", err
	}
	return resp.SecureURL, resp.PublicID, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

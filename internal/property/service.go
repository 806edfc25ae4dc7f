package property

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/image"
	"github.com/evcraddock/realstate-api/internal/upload"
)

// Service provides property business logic.
type Service struct {
	repo      *Repository
	images    *image.Repository
	validator *upload.Validator
	files     upload.DiskStore
	imagesDir string
}

// NewService creates a property service. Uploaded images are written to
// imagesDir, which must already exist.
func NewService(repo *Repository, images *image.Repository, validator *upload.Validator, imagesDir string) *Service {
	return &Service{
		repo:      repo,
		images:    images,
		validator: validator,
		imagesDir: imagesDir,
	}
}

// Create stores a new property.
func (s *Service) Create(ctx context.Context, in Create) (*Property, error) {
	return s.repo.Create(ctx, in)
}

// Get returns a property or apperr.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Property, error) {
	p, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("property", id)
	}
	return p, nil
}

// UpdatePrice sets a new price on an existing property and returns the
// updated record. price must be a finite number greater than zero.
func (s *Service) UpdatePrice(ctx context.Context, id string, price float64) (*Property, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return nil, apperr.Invalid("price", "must be greater than 0")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, Update{Price: &price})
}

// UploadImage validates f, writes it under the images directory and records
// it against the property.
//
// The file write and the record insert are independent. If the insert fails
// the written file is left in place.
func (s *Service) UploadImage(ctx context.Context, id, filename string, f io.ReadSeeker) (*image.PropertyImage, error) {
	if err := s.validator.Validate(filename, f); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	dst := filepath.Join(s.imagesDir, uuid.NewString()+"-"+SanitizeFilename(filename))
	if err := s.files.Save(f, dst); err != nil {
		return nil, err
	}

	return s.images.AddImage(ctx, id, dst, true)
}

// SanitizeFilename strips any directory part from name and replaces spaces
// with underscores.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.TrimSpace(name)
	return strings.ReplaceAll(name, " ", "_")
}

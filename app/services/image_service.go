package services

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/logger"
	"github.com/pedalpoint/bikeshop/pkg/storage"
)

// ImageRepo is the persistence surface the image service needs.
type ImageRepo interface {
	Create(img *models.ProductImage) error
	FindByID(id uint) (models.ProductImage, error)
	ByProduct(productID uint) ([]models.ProductImage, error)
	Delete(id uint) error
}

// ImageStore is the slice of the storage disk the image service uses.
// The package-level storage helpers satisfy it via storageDisk.
type ImageStore interface {
	PutStream(path string, r io.Reader) error
	Delete(path string) error
	URL(path string) string
}

// storageDisk adapts the default storage disk to ImageStore.
type storageDisk struct{}

func (storageDisk) PutStream(p string, r io.Reader) error { return storage.PutStream(p, r) }
func (storageDisk) Delete(p string) error                 { return storage.Delete(p) }
func (storageDisk) URL(p string) string                   { return storage.URL(p) }

// DefaultImageStore uses the configured default storage disk.
func DefaultImageStore() ImageStore { return storageDisk{} }

// ImageService stores image files on a disk and tracks them in the database.
type ImageService struct {
	repo     ImageRepo
	products ProductRepo
	store    ImageStore
}

func NewImageService(repo ImageRepo, products ProductRepo, store ImageStore) *ImageService {
	return &ImageService{repo: repo, products: products, store: store}
}

// Upload writes the file under a product-scoped random key and records it.
// The original filename is kept for display only.
func (s *ImageService) Upload(productID uint, filename string, r io.Reader) (models.ProductImage, error) {
	if _, err := s.products.FindByID(productID); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProductImage{}, ErrNotFound
	} else if err != nil {
		return models.ProductImage{}, err
	}

	key := fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), path.Ext(filename))
	if err := s.store.PutStream(key, r); err != nil {
		return models.ProductImage{}, fmt.Errorf("store image: %w", err)
	}

	img := models.ProductImage{
		ProductID: productID,
		Name:      filename,
		URL:       s.store.URL(key),
		PublicID:  key,
	}
	if err := s.repo.Create(&img); err != nil {
		// Orphaned object cleanup is best effort.
		if derr := s.store.Delete(key); derr != nil {
			logger.Warn("orphaned image object left behind", "key", key, "error", derr)
		}
		return img, fmt.Errorf("record image: %w", err)
	}
	return img, nil
}

// ByProduct lists a product's images.
func (s *ImageService) ByProduct(productID uint) ([]models.ProductImage, error) {
	return s.repo.ByProduct(productID)
}

// Delete removes the stored object and the row. A missing object does not
// keep the row alive.
func (s *ImageService) Delete(id uint) error {
	img, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := s.store.Delete(img.PublicID); err != nil {
		logger.Warn("delete image object failed", "key", img.PublicID, "error", err)
	}
	return s.repo.Delete(id)
}

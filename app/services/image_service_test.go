package services

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
)

type fakeImageRepo struct {
	rows   map[uint]models.ProductImage
	nextID uint
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{rows: map[uint]models.ProductImage{}, nextID: 1}
}

func (f *fakeImageRepo) Create(img *models.ProductImage) error {
	img.ID = f.nextID
	f.nextID++
	f.rows[img.ID] = *img
	return nil
}

func (f *fakeImageRepo) FindByID(id uint) (models.ProductImage, error) {
	img, ok := f.rows[id]
	if !ok {
		return img, gorm.ErrRecordNotFound
	}
	return img, nil
}

func (f *fakeImageRepo) ByProduct(productID uint) ([]models.ProductImage, error) {
	var out []models.ProductImage
	for _, img := range f.rows {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeImageRepo) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (m *memStore) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[path] = data
	return nil
}

func (m *memStore) Delete(path string) error {
	delete(m.objects, path)
	return nil
}

func (m *memStore) URL(path string) string { return "http://cdn.test/" + path }

func TestImageUploadStoresObjectAndRow(t *testing.T) {
	products, bike, _ := seedCatalog(t)
	repo := newFakeImageRepo()
	store := newMemStore()
	svc := NewImageService(repo, products, store)

	img, err := svc.Upload(bike.ID, "front.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)

	assert.Equal(t, "front.jpg", img.Name)
	assert.Contains(t, store.objects, img.PublicID)
	assert.True(t, strings.HasSuffix(img.PublicID, ".jpg"))
	assert.Equal(t, "http://cdn.test/"+img.PublicID, img.URL)

	list, err := svc.ByProduct(bike.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestImageUploadUnknownProduct(t *testing.T) {
	products, _, _ := seedCatalog(t)
	svc := NewImageService(newFakeImageRepo(), products, newMemStore())

	_, err := svc.Upload(404, "front.jpg", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestImageDeleteRemovesObjectAndRow(t *testing.T) {
	products, bike, _ := seedCatalog(t)
	repo := newFakeImageRepo()
	store := newMemStore()
	svc := NewImageService(repo, products, store)

	img, err := svc.Upload(bike.ID, "front.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(img.ID))
	assert.NotContains(t, store.objects, img.PublicID)

	require.ErrorIs(t, svc.Delete(img.ID), ErrNotFound)
}

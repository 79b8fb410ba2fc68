package controllers

import (
	"net/http"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// maxUploadBytes caps multipart image uploads at 10 MB.
const maxUploadBytes = 10 << 20

// ImageController serves product image upload and listing.
type ImageController struct {
	service *services.ImageService
}

func NewImageController(service *services.ImageService) *ImageController {
	return &ImageController{service: service}
}

// Upload accepts a multipart form with a "file" part, stores it on the
// configured disk and records the row.
func (c *ImageController) Upload(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUint(r, "productId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	img, err := c.service.Upload(productID, header.Filename, file)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, img)
}

func (c *ImageController) ByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUint(r, "productId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	imgs, err := c.service.ByProduct(productID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, imgs)
}

func (c *ImageController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid image id")
		return
	}
	if err := c.service.Delete(id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "image deleted")
}

// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/upload"
)

// UploadHandler handles admin image uploads
type UploadHandler struct {
	uploadService *upload.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *upload.Service) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage handles POST /admin/products/upload-image with the file in
// the "my_file" form field
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, header, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	uploaded, err := h.uploadService.UploadImage(c.Request.Context(), &upload.ImageUploadRequest{
		File:       file,
		Filename:   header.Filename,
		Size:       header.Size,
		Category:   c.DefaultPostForm("category", "products"),
		UploadedBy: userID,
	})
	if err != nil {
		respondError(c, err, "Failed to upload image")
		return
	}

	respondMessage(c, http.StatusCreated, "Image uploaded successfully", uploaded)
}

// DeleteImage handles DELETE /admin/products/image?url=
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		respondFailure(c, http.StatusBadRequest, "url is required")
		return
	}

	if err := h.uploadService.DeleteByURL(c.Request.Context(), url); err != nil {
		respondError(c, err, "Failed to delete image")
		return
	}

	respondMessage(c, http.StatusOK, "Image deleted successfully", nil)
}

// formImage opens the uploaded image from "my_file", or "image" as used by
// older clients
func formImage(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	for _, field := range []string{"my_file", "image"} {
		file, header, err := c.Request.FormFile(field)
		if err == nil {
			return file, header, true
		}
	}
	respondFailure(c, http.StatusBadRequest, "No image file provided")
	return nil, nil, false
}

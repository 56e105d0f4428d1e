// internal/interfaces/http/handlers/feature.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/feature"
	"github.com/your-org/fashion-store/internal/domain/upload"
)

// FeatureHandler handles the storefront banner images
type FeatureHandler struct {
	featureService *feature.Service
}

// NewFeatureHandler creates a new feature image handler
func NewFeatureHandler(featureService *feature.Service) *FeatureHandler {
	return &FeatureHandler{featureService: featureService}
}

// GetFeatureImages handles GET /common/feature/get
func (h *FeatureHandler) GetFeatureImages(c *gin.Context) {
	images, err := h.featureService.GetFeatureImages(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve feature images")
		return
	}

	respondSuccess(c, http.StatusOK, images)
}

// AddFeatureImage handles POST /common/feature/add
func (h *FeatureHandler) AddFeatureImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, header, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	image, err := h.featureService.AddFeatureImage(c.Request.Context(), &upload.ImageUploadRequest{
		File:       file,
		Filename:   header.Filename,
		Size:       header.Size,
		UploadedBy: userID,
	})
	if err != nil {
		respondError(c, err, "Failed to add feature image")
		return
	}

	respondSuccess(c, http.StatusCreated, image)
}

// DeleteFeatureImage handles DELETE /common/feature/delete/:id
func (h *FeatureHandler) DeleteFeatureImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.featureService.DeleteFeatureImage(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete feature image")
		return
	}

	respondMessage(c, http.StatusOK, "Feature image deleted", nil)
}

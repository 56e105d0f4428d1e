// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/domain/cart"
	"github.com/your-org/fashion-store/internal/domain/feature"
	"github.com/your-org/fashion-store/internal/domain/order"
	"github.com/your-org/fashion-store/internal/domain/product"
	"github.com/your-org/fashion-store/internal/domain/upload"
	"github.com/your-org/fashion-store/internal/domain/user"
	"github.com/your-org/fashion-store/internal/domain/wishlist"
	"github.com/your-org/fashion-store/internal/interfaces/http/middleware"
	"github.com/your-org/fashion-store/internal/pkg/auth"
)

// errorStatuses maps domain errors to HTTP statuses. Anything not listed
// is a 500.
var errorStatuses = []struct {
	err    error
	status int
}{
	{product.ErrProductNotFound, http.StatusNotFound},
	{cart.ErrItemNotFound, http.StatusNotFound},
	{order.ErrOrderNotFound, http.StatusNotFound},
	{user.ErrUserNotFound, http.StatusNotFound},
	{user.ErrAddressNotFound, http.StatusNotFound},
	{wishlist.ErrNotInWishlist, http.StatusNotFound},
	{feature.ErrFeatureNotFound, http.StatusNotFound},
	{upload.ErrUploadedFileNotFound, http.StatusNotFound},

	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{product.ErrNotPurchased, http.StatusForbidden},
	{user.ErrEmailTaken, http.StatusConflict},
	{product.ErrAlreadyReviewed, http.StatusConflict},
	{upload.ErrFileTooLarge, http.StatusRequestEntityTooLarge},

	{product.ErrProductUnavailable, http.StatusBadRequest},
	{product.ErrInsufficientStock, http.StatusBadRequest},
	{product.ErrInvalidSize, http.StatusBadRequest},
	{product.ErrInvalidColor, http.StatusBadRequest},
	{product.ErrInvalidProduct, http.StatusBadRequest},
	{product.ErrEmptyKeyword, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{order.ErrEmptyCart, http.StatusBadRequest},
	{order.ErrInvalidStatus, http.StatusBadRequest},
	{order.ErrInvalidPaymentMethod, http.StatusBadRequest},
	{order.ErrOrderNotPending, http.StatusBadRequest},
	{order.ErrPaymentVerification, http.StatusBadRequest},
	{order.ErrCancellationNotAllowed, http.StatusBadRequest},
	{order.ErrReturnNotAllowed, http.StatusBadRequest},
	{order.ErrReasonTooShort, http.StatusBadRequest},
	{order.ErrNoPendingRequest, http.StatusBadRequest},
	{order.ErrAdminNotesRequired, http.StatusBadRequest},
	{order.ErrInvalidAction, http.StatusBadRequest},
	{order.ErrInvalidRefund, http.StatusBadRequest},
	{user.ErrAddressLimit, http.StatusBadRequest},
	{auth.ErrWeakPassword, http.StatusBadRequest},
	{wishlist.ErrAlreadyInWishlist, http.StatusBadRequest},
	{upload.ErrUnsupportedType, http.StatusBadRequest},
	{upload.ErrInvalidImage, http.StatusBadRequest},
}

// statusFor returns the HTTP status of a service error
func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondError writes a service error. Unexpected errors are logged and
// answered with a generic message.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.ContextRequestID),
			"path":       c.FullPath(),
		}).Error(fallback)
		respondFailure(c, status, fallback)
		return
	}
	respondFailure(c, status, err.Error())
}

// respondBindingError answers a request body or query that failed binding
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		respondFailure(c, http.StatusBadRequest, "Invalid value for "+fe.Field()+": failed "+fe.Tag()+" check")
		return
	}
	respondFailure(c, http.StatusBadRequest, "Invalid request data")
}

// paramID reads a positive numeric path parameter, answering 400 otherwise
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondFailure(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated user id, answering 401 otherwise
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondFailure(c, http.StatusUnauthorized, "Unauthorised user!")
		return 0, false
	}
	return userID, true
}

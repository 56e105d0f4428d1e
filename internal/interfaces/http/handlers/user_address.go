// internal/interfaces/http/handlers/user_address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fashion-store/internal/domain/user"
)

// UserAddressHandler handles address book endpoints
type UserAddressHandler struct {
	addressService *user.AddressService
}

// NewUserAddressHandler creates a new address handler
func NewUserAddressHandler(addressService *user.AddressService) *UserAddressHandler {
	return &UserAddressHandler{addressService: addressService}
}

// GetAddresses handles GET /shop/address/get
func (h *UserAddressHandler) GetAddresses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.FetchAllAddress(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve addresses")
		return
	}

	respondSuccess(c, http.StatusOK, addresses)
}

// CreateAddress handles POST /shop/address/add
func (h *UserAddressHandler) CreateAddress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	address, err := h.addressService.AddAddress(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "Failed to add address")
		return
	}

	respondSuccess(c, http.StatusCreated, address)
}

// UpdateAddress handles PUT /shop/address/update/:addressId
func (h *UserAddressHandler) UpdateAddress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	addressID, ok := paramID(c, "addressId")
	if !ok {
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	address, err := h.addressService.EditAddress(c.Request.Context(), userID, addressID, &req)
	if err != nil {
		respondError(c, err, "Failed to update address")
		return
	}

	respondSuccess(c, http.StatusOK, address)
}

// DeleteAddress handles DELETE /shop/address/delete/:addressId
func (h *UserAddressHandler) DeleteAddress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	addressID, ok := paramID(c, "addressId")
	if !ok {
		return
	}

	if err := h.addressService.DeleteAddress(c.Request.Context(), userID, addressID); err != nil {
		respondError(c, err, "Failed to delete address")
		return
	}

	respondMessage(c, http.StatusOK, "Address deleted successfully", nil)
}

// internal/domain/user/address_service.go
package user

import (
	"context"
	"strings"
)

// AddressService handles saved delivery addresses
type AddressService struct {
	repo AddressRepository
	max  int
}

// NewAddressService creates a new address service
func NewAddressService(repo AddressRepository, maxAddresses int) *AddressService {
	if maxAddresses <= 0 {
		maxAddresses = 3
	}
	return &AddressService{repo: repo, max: maxAddresses}
}

// AddressRequest represents address create and edit data
type AddressRequest struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Pincode string `json:"pincode" binding:"required,numeric,len=6"`
	Phone   string `json:"phone" binding:"required,min=10,max=15"`
	Notes   string `json:"notes"`
}

// AddAddress stores a new address while the user is under the limit
func (s *AddressService) AddAddress(ctx context.Context, userID uint, req *AddressRequest) (*Address, error) {
	count, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.max) {
		return nil, ErrAddressLimit
	}

	a := &Address{UserID: userID}
	apply(a, req)
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// FetchAllAddress lists a user's addresses
func (s *AddressService) FetchAllAddress(ctx context.Context, userID uint) ([]Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// EditAddress replaces the fields of one of the user's addresses
func (s *AddressService) EditAddress(ctx context.Context, userID, addressID uint, req *AddressRequest) (*Address, error) {
	a, err := s.repo.FindForUser(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	apply(a, req)
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAddress removes one of the user's addresses
func (s *AddressService) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	return s.repo.Delete(ctx, userID, addressID)
}

func apply(a *Address, req *AddressRequest) {
	a.Address = strings.TrimSpace(req.Address)
	a.City = strings.TrimSpace(req.City)
	a.Pincode = strings.TrimSpace(req.Pincode)
	a.Phone = strings.TrimSpace(req.Phone)
	a.Notes = strings.TrimSpace(req.Notes)
}

package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/your-org/fashion-store/internal/domain/order"
)

// RegisterValidators adds the custom binding tags used by request types
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	return v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return order.OrderStatus(fl.Field().String()).IsValid()
	})
}

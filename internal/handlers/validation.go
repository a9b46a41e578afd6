package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

var registerValidatorsOnce sync.Once

// RegisterValidators installs the custom binding tags used by the request DTOs.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		}
	})
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return domain.PaymentMethod(fl.Field().String()).IsKnown()
}

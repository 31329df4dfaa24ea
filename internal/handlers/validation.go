package handlers

import (
	"sync"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the enum tags used by the request DTOs to gin's
// validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
			return domain.UserRole(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("unit_status", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseUnitStatus(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("lead_status", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseLeadStatus(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
			_, err := domain.ParsePaymentMethod(fl.Field().String())
			return err == nil
		})
	})
}

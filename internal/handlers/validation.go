package handlers

import (
	"errors"

	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		return services.ValidateAccountCode(fl.Field().String()) == nil
	})
}

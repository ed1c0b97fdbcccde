package utils

import (
	"blood-portal/domain"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	v := validator.New()
	_ = v.RegisterValidation("blood_group", func(fl validator.FieldLevel) bool {
		return domain.BloodGroup(fl.Field().String()).Valid()
	})
	Validate = v
}

package models

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// x, y and z come in as form strings but must parse as integers.
	v.RegisterValidation("intstring", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateCreateRequest checks a create request against the field
// constraints. On failure it returns a field name to violated constraint map
// for the 400 response body.
func ValidateCreateRequest(req *CreateCubePhotoRequest) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	details := map[string]string{}
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			constraint := fe.Tag()
			if fe.Param() != "" {
				constraint += "=" + fe.Param()
			}
			details[fe.Field()] = constraint
		}
		return details
	}
	details["request"] = err.Error()
	return details
}

package handlers

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"recipe-app-api/app/server/types"
)

// validate 校验请求体，没有问题时返回 nil
func (a *App) validate(req any) types.FieldErrors {
	err := a.v.Struct(req)
	if err == nil {
		return nil
	}

	fe := types.FieldErrors{}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		fe.Add(types.NonFieldErrors, err.Error())
		return fe
	}

	for _, vErr := range vErrs {
		fe.Add(vErr.Field(), fieldMessage(vErr))
	}

	return fe
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.String {
			return "This field may not be blank."
		}
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String && fe.Param() == "1" {
			return "This field may not be blank."
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "price":
		return "Ensure that there are no more than 5 digits in total and no more than 2 decimal places."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

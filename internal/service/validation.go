package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/pageza/chefapp/backend/internal/models"
)

var validate = newValidator()

var enumValues = map[string][]string{
	"category":   models.Categories,
	"difficulty": models.Difficulties,
	"cuisine":    models.Cuisines,
	"dietary":    models.Dietaries,
}

// messages keyed by field.tag
var fieldMessages = map[string]string{
	"name.required":     "Name is required",
	"name.min":          "Name is required",
	"email.required":    "Please include a valid email",
	"email.email":       "Please include a valid email",
	"password.required": "Password must be at least 6 characters",
	"password.min":      "Password must be at least 6 characters",
	"title.min":         "Please provide a recipe title",
	"title.max":         "Title cannot be more than 100 characters",
	"description.max":   "Description cannot be more than 500 characters",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	for tag, values := range enumValues {
		values := values
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return models.OneOf(fl.Field().String(), values)
		})
	}
	return v
}

// validateStruct runs the tag rules on req and turns failures into a
// validation error whose message is the first failing field's.
func validateStruct(req interface{}, msg string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal("Server error", err)
	}

	out := apperr.Validation(msg)
	for i, fe := range verrs {
		text := fieldMessage(fe)
		if i == 0 {
			out.Message = text
		}
		out.WithDetail(fe.Field(), text)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if m, ok := fieldMessages[field+"."+fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot be more than %s", field, fe.Param())
	}
	if values, ok := enumValues[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(values, ", "))
	}
	return fmt.Sprintf("%s is invalid", field)
}

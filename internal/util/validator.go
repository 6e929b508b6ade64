package util

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/constant"
)

// CustomValidations maps custom tags to the values they accept. They are
// registered as validations and get translations in rekuest.
var CustomValidations = map[string][]string{
	"tone":                 constant.Tones,
	"outlettype":           constant.OutletTypes,
	"infractiontype":       constant.InfractionTypes,
	"suggestionoutlettype": append(append([]string{}, constant.OutletTypes...), constant.OutletTypeOther),
}

func NewValidator() *validator.Validate {
	validate := validator.New()
	for tag, accepted := range CustomValidations {
		_ = validate.RegisterValidation(tag, oneOfStrings(accepted))
	}
	validate.RegisterCustomTypeFunc(nullIntValuer, null.Int{})
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})

	return validate
}

func oneOfStrings(accepted []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return lo.Contains(accepted, fl.Field().String())
	}
}

func nullIntValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.Int); ok {
		return valuer.Int64
	}

	return nil
}

func nullStringValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.String); ok {
		return valuer.String
	}

	return nil
}

package validations

import (
	"reflect"

	"gopkg.in/go-playground/validator.v9"
)

// Latitude checks a float64 field holds a valid latitude.
func Latitude(fl validator.FieldLevel) bool {
	if fl.Field().Type().Kind() != reflect.Float64 {
		return false
	}

	lat := fl.Field().Float()

	return lat >= -90 && lat <= 90
}

// Longitude checks a float64 field holds a valid longitude.
func Longitude(fl validator.FieldLevel) bool {
	if fl.Field().Type().Kind() != reflect.Float64 {
		return false
	}

	lng := fl.Field().Float()

	return lng >= -180 && lng <= 180
}

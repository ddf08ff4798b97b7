package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var instance *Validator
var once sync.Once

// Validator bundles struct validation with string sanitization. All
// user-entered text passes through the sanitizer before it is validated
// or sent anywhere.
type Validator struct {
	SanitizeData func(data interface{}) error
	Validate     *validator.Validate
}

func GetValidator() *Validator {
	once.Do(func() {
		sanitizer := bluemonday.UGCPolicy()
		validate := validator.New()
		// Report fields under their JSON names so error messages match
		// what the user actually typed into.
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		instance = &Validator{
			SanitizeData: func(data interface{}) error { return sanitizeData(sanitizer, data) },
			Validate:     validate,
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

// ValidateAndSanitizeStruct sanitizes all string fields of the given
// struct in place and then validates it. The returned error is either a
// validator.ValidationErrors value or a sanitization failure.
func ValidateAndSanitizeStruct(obj interface{}) error {
	v := GetValidator()
	if err := v.SanitizeData(obj); err != nil {
		return err
	}
	return v.Validate.Struct(obj)
}

// FirstErrorMessage renders the first field failure of a validation
// error into a short human-readable message for inline display.
func FirstErrorMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid input"
	}

	fieldError := validationErrors[0]
	field := strings.ReplaceAll(strings.ToLower(fieldError.Field()), "_", " ")
	switch fieldError.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s is too long", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// sanitizeData uses reflection to sanitize all string fields of a struct
func sanitizeData(policy *bluemonday.Policy, data interface{}) error {
	v := reflect.ValueOf(data)
	// Ensure that the provided data is a pointer
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("sanitizeData expects a pointer to a struct")
	}
	// Dereference the pointer to get the struct
	v = v.Elem()
	// Ensure that we now have a struct
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("sanitizeData expects a pointer to a struct, got a pointer to %v", v.Kind())
	}

	// Iterate over all fields of the struct
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		// Check if the field can be set
		if !field.CanSet() {
			continue
		}

		// Sanitize string fields
		if field.Kind() == reflect.String {
			originalText := field.String()
			sanitizedText := policy.Sanitize(strings.TrimSpace(originalText))
			field.SetString(sanitizedText)
		}

		// Recursively handle nested structs and pointers to structs
		if field.Kind() == reflect.Struct {
			_ = sanitizeData(policy, field.Addr().Interface())
		} else if field.Kind() == reflect.Ptr && field.Elem().Kind() == reflect.Struct {
			// Ensure the pointer is not nil before trying to sanitize
			if !field.IsNil() {
				_ = sanitizeData(policy, field.Interface())
			}
		}
	}
	return nil
}

// registerCustomValidators registers custom validators for our
// application-specific fields.
func registerCustomValidators(v *validator.Validate) {
	_ = v.RegisterValidation("post_text", postTextValidation)
}

// postTextValidation ensures that post content is a valid UTF-8 encoded
// string.
func postTextValidation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return utf8.ValidString(value)
}

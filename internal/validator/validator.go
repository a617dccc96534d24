package validator

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	setupOnce sync.Once
	validate  *govalidator.Validate

	// trans is the singleton English translator for validation errors.
	trans ut.Translator
)

// alphaSpaceRegex matches names made of letters and spaces only.
var alphaSpaceRegex = regexp.MustCompile(`^[a-zA-Z ]+$`)

// Setup builds the validator with English translations and the custom
// alphaspace rule. Safe to call more than once; only the first call does
// the work.
func Setup() {
	setupOnce.Do(func() {
		validate = govalidator.New()

		// Use JSON tag name for field names in error messages.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation("alphaspace", func(fl govalidator.FieldLevel) bool {
			return alphaSpaceRegex.MatchString(fl.Field().String())
		})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, trans)

		_ = validate.RegisterTranslation("alphaspace", trans,
			func(ut ut.Translator) error {
				return ut.Add("alphaspace", "{0} may only contain letters and spaces", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				t, _ := ut.T("alphaspace", fe.Field())
				return t
			},
		)
	})
}

// Struct validates dst and returns a map of field name → human-readable
// error message, or nil if dst is valid.
func Struct(dst interface{}) map[string]string {
	Setup()

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)

	if ve, ok := err.(govalidator.ValidationErrors); ok {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a field-level error (e.g. an invalid target value).
	fields["detail"] = err.Error()
	return fields
}

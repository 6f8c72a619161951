// Package bind converts decoded request bodies into typed payloads and validates them
package bind

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton with english translations and json tag names
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Decode turns a decoded JSON body (as handed to route handlers) into T and
// validates it. Type mismatches and failed rules map to validation errors
// carrying the offending field
func Decode[T any](body any) (T, error) {
	var zero T
	if body == nil {
		return zero, perr.Validationf("request body is required")
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "re-encode body")
	}

	var dst T
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&dst); err != nil {
		if ute, ok := err.(*json.UnmarshalTypeError); ok {
			return zero, perr.WithField(perr.Validationf("%s must be of type %s", ute.Field, ute.Type), ute.Field)
		}
		return zero, perr.Wrap(err, perr.ErrorCodeValidation, "body has the wrong shape")
	}

	if err := Get().Validator.Struct(dst); err != nil {
		if inv, ok := err.(*validator.InvalidValidationError); ok {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return zero, perr.Wrap(inv, perr.ErrorCodeValidation, "validation error")
		}
		field, msg := ValidationFieldAndMessage(err)
		return zero, perr.WithField(perr.Validationf("%s", msg), field)
	}
	return dst, nil
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

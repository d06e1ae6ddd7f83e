package httpapi

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// formValidator checks request bodies against their validate tags and
// renders the first failure as an English sentence.
type formValidator struct {
	v     *validator.Validate
	trans ut.Translator
}

func newFormValidator() *formValidator {
	enLoc := en.New()
	trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())

	// messages name the json field
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = en_translations.RegisterDefaultTranslations(v, trans)

	return &formValidator{v: v, trans: trans}
}

// check returns "" when v is valid, else a message for the first bad field.
func (f *formValidator) check(v any) string {
	err := f.v.Struct(v)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Translate(f.trans)
	}
	return "malformed request"
}

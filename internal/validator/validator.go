package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/sekolah-console/internal/formerror"
	"github.com/stemsi/sekolah-console/internal/hierarchy"
)

var (
	trans     ut.Translator
	setupOnce sync.Once
)

// customRules are the console-specific binding tags and their messages.
var customRules = []struct {
	tag     string
	message string
	fn      govalidator.Func
}{
	{
		tag:     "class_name",
		message: "{0} must start with a grade code (TKA, TKB, SD1-SD6, SMP1-SMP3) and be at most 50 characters",
		fn: func(fl govalidator.FieldLevel) bool {
			return hierarchy.ValidateClassName(fl.Field().String()) == nil
		},
	},
	{
		tag:     "grade_code",
		message: "{0} must be one of TKA, TKB, SD1-SD6, SMP1-SMP3",
		fn: func(fl govalidator.FieldLevel) bool {
			return hierarchy.IsGradeCode(fl.Field().String())
		},
	},
}

// Setup registers JSON field names, English translations and the console's
// custom rules on gin's binding engine. Safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		for _, rule := range customRules {
			_ = v.RegisterValidation(rule.tag, rule.fn)
			_ = v.RegisterTranslation(rule.tag, trans,
				func(ut ut.Translator) error {
					return ut.Add(rule.tag, rule.message, true)
				},
				func(ut ut.Translator, fe govalidator.FieldError) string {
					msg, _ := ut.T(rule.tag, fe.Field())
					return msg
				},
			)
		}
	})
}

// Translate turns a binding error into a form result: validation failures
// become field errors, anything else (malformed JSON) a general error.
func Translate(err error) formerror.Result {
	res := formerror.Result{FieldErrors: map[string]string{}}

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				res.FieldErrors[fe.Field()] = fe.Translate(trans)
			} else {
				res.FieldErrors[fe.Field()] = fe.Error()
			}
		}
		return res
	}

	res.GeneralError = err.Error()
	return res
}

// Bind binds and validates the JSON body into dst. It returns nil on success.
func Bind(c *gin.Context, dst interface{}) *formerror.Result {
	if err := c.ShouldBindJSON(dst); err != nil {
		res := Translate(err)
		return &res
	}
	return nil
}

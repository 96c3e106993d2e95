package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
)

// SerialNumberTag validates product serial numbers
const SerialNumberTag = "serialnumber"

// SerialNumberPattern is the pattern every product serial number matches
const SerialNumberPattern = `^[A-Z0-9]{8,20}$`

var serialNumberRegexp = regexp.MustCompile(SerialNumberPattern)

type violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError holds all violations found in request payload
type PayloadError struct {
	violations []violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range e.violations {
		buff.WriteString(err.Message)
		buff.WriteString("\n")
	}

	return buff.String()
}

// Violation appends violation to the payload error
func (e *PayloadError) Violation(field, message string) {
	e.violations = append(e.violations, violation{Field: field, Message: message})
}

// StatusCode returns http status code for error
func (e *PayloadError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// IsSerialNumber reports whether s is valid product serial number
func IsSerialNumber(s string) bool {
	return serialNumberRegexp.MatchString(s)
}

// EchoValidator adapts go-playground validator to echo
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds EchoValidator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

// New builds EchoValidator with english translations and custom CRM tags registered
func New() (*EchoValidator, error) {
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("missing en translations for validator")
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations - %w", err)
	}

	if err := v.RegisterValidation(SerialNumberTag, func(fl validator.FieldLevel) bool {
		return IsSerialNumber(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register %s validation - %w", SerialNumberTag, err)
	}

	err := v.RegisterTranslation(SerialNumberTag, trans, func(ut ut.Translator) error {
		return ut.Add(SerialNumberTag, "{0} must be 8-20 uppercase alphanumeric characters", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		msg, _ := ut.T(SerialNumberTag, fe.Field())
		return msg
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register %s translation - %w", SerialNumberTag, err)
	}

	return Echo(v, trans), nil
}

func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]violation, 0, len(ve))}
	for _, e := range ve {
		pldErr.Violation(e.Field(), e.Translate(v.translator))
	}
	return pldErr
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

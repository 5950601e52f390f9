// Package validator runs struct-tag validation over service inputs and turns
// violations into field-keyed messages. The same custom tags are installed
// on Gin's binding engine.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/money"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the shared validator instance.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		registerCustom(v)
		instance = v
	})
	return instance
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
		registerCustom(v)
	}
}

func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("category_type", validateCategoryType)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("date_only", validateDateOnly)
	_ = v.RegisterValidation("not_future", validateNotFuture)
}

// Struct validates s and returns nil or a VALIDATION_FAILED AppError whose
// Fields map json field names to messages.
func Struct(s any) error {
	fields := Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return apperrors.NewValidation(fields)
}

// Fields validates s and returns the violations without wrapping them, so
// callers can add their own checks before building the error.
func Fields(s any) apperrors.FieldErrors {
	return collect(Get().Struct(s))
}

// Translate converts an error produced by Gin's binding engine into a
// validation AppError. It returns nil when err carries no field violations.
func Translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	return apperrors.NewValidation(collect(verrs))
}

func collect(err error) apperrors.FieldErrors {
	fields := apperrors.FieldErrors{}
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields.Add("_", err.Error())
		return fields
	}
	for _, fe := range verrs {
		fields.Add(fe.Field(), message(fe))
	}
	return fields
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func attr(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func message(fe validator.FieldError) string {
	name := attr(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", name, amountParam(fe))
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", name, amountParam(fe))
	case "lte":
		return fmt.Sprintf("The %s field must be less than or equal to %s.", name, amountParam(fe))
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "uuid":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "nefield":
		return fmt.Sprintf("The %s field and %s must be different.", name, attr(toSnake(fe.Param())))
	case "account_type", "category_type", "transaction_type", "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "date_only":
		return fmt.Sprintf("The %s field must be a valid date.", name)
	case "not_future":
		return fmt.Sprintf("The %s field must be a date before or equal to today.", name)
	}
	return fmt.Sprintf("The %s field is invalid.", name)
}

// amountParam renders numeric limits on money fields in currency units.
func amountParam(fe validator.FieldError) string {
	if fe.Type() == reflect.TypeOf(money.Amount(0)) || fe.Type() == reflect.TypeOf((*money.Amount)(nil)) {
		if n, err := strconv.ParseInt(fe.Param(), 10, 64); err == nil {
			return money.Amount(n).String()
		}
	}
	return fe.Param()
}

// toSnake maps a Go field name such as ToAccountID to to_account_id.
func toSnake(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper {
			if prevLower {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
		prevLower = !isUpper
	}
	return b.String()
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch models.AccountType(fl.Field().String()) {
	case models.AccountTypeCash, models.AccountTypeBank, models.AccountTypeEwallet, models.AccountTypeOther:
		return true
	}
	return false
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch models.CategoryType(fl.Field().String()) {
	case models.CategoryTypeIncome, models.CategoryTypeExpense:
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return true
	}
	return false
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

// validateNotFuture passes unparseable dates so that date_only reports them.
func validateNotFuture(fl validator.FieldLevel) bool {
	var d time.Time
	switch v := fl.Field().Interface().(type) {
	case string:
		parsed, err := models.ParseDate(v)
		if err != nil {
			return true
		}
		d = parsed
	case time.Time:
		d = models.DateOnly(v)
	default:
		return false
	}
	return !d.After(models.Today())
}

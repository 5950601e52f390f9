package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/middleware"
	"brewbooks/internal/models"
	"brewbooks/internal/money"
	"brewbooks/internal/validator"
)

// Response is the success envelope.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse documents the error envelope.
type ErrorResponse = middleware.ErrorResponse

// respond writes a success envelope.
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Message: message, Data: data})
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondError(c, err)
}

// bindJSON decodes the request body into obj. Decoding failures become
// validation errors; a malformed money value is reported on moneyField.
func bindJSON(c *gin.Context, obj interface{}, moneyField string) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return apperrors.WithMessage(apperrors.ErrValidation, "The request body must be a JSON object.")
	case errors.Is(err, money.ErrPrecision):
		return apperrors.Field(moneyField, fmt.Sprintf("The %s field must have 0-2 decimal places.", attr(moneyField)))
	case errors.Is(err, money.ErrRange):
		return apperrors.Field(moneyField, fmt.Sprintf("The %s field must be less than or equal to %s.", attr(moneyField), money.Amount(money.MaxAmount)))
	case errors.Is(err, money.ErrInvalid):
		return apperrors.Field(moneyField, fmt.Sprintf("The %s field must be a number.", attr(moneyField)))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperrors.Field(typeErr.Field, fmt.Sprintf("The %s field is invalid.", attr(typeErr.Field)))
	}
	if verr := validator.Translate(err); verr != nil {
		return verr
	}
	return apperrors.WithMessage(apperrors.ErrValidation, "The request body must be valid JSON.")
}

func attr(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// queryString returns a trimmed query parameter or nil when absent or blank.
func queryString(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

// queryDate parses a YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, key string, fields apperrors.FieldErrors) *time.Time {
	v := queryString(c, key)
	if v == nil {
		return nil
	}
	t, err := models.ParseDate(*v)
	if err != nil {
		fields.Add(key, fmt.Sprintf("The %s field must be a valid date.", attr(key)))
		return nil
	}
	t = models.DateOnly(t)
	return &t
}

// queryBool parses true/false/1/0 query parameters.
func queryBool(c *gin.Context, key string, fields apperrors.FieldErrors) *bool {
	v := queryString(c, key)
	if v == nil {
		return nil
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		fields.Add(key, fmt.Sprintf("The %s field must be true or false.", attr(key)))
		return nil
	}
	return &b
}

// queryAmount parses a decimal money query parameter.
func queryAmount(c *gin.Context, key string, fields apperrors.FieldErrors) *money.Amount {
	v := queryString(c, key)
	if v == nil {
		return nil
	}
	a, err := money.Parse(*v)
	if err != nil {
		fields.Add(key, fmt.Sprintf("The %s field must be a number.", attr(key)))
		return nil
	}
	return &a
}

// queryInt parses an integer query parameter, returning 0 when absent.
func queryInt(c *gin.Context, key string, fields apperrors.FieldErrors) int {
	v := queryString(c, key)
	if v == nil {
		return 0
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		fields.Add(key, fmt.Sprintf("The %s field must be an integer.", attr(key)))
		return 0
	}
	return n
}

// bindQueryError converts a query binding failure into a validation error.
func bindQueryError(err error) error {
	if verr := validator.Translate(err); verr != nil {
		return verr
	}
	return apperrors.WithMessage(apperrors.ErrValidation, err.Error())
}

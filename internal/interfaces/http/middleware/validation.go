package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/interfaces/http/dto"
)

// messages for validation tags that take no parameter
var plainTagMessages = map[string]string{
	"required":      "This field is required",
	"email":         "Invalid email format",
	"uuid":          "Invalid UUID format",
	"url":           "Invalid URL format",
	"numeric":       "Must be numeric",
	"alphanum":      "Must be alphanumeric",
	"alpha":         "Must contain only letters",
	"export_reason": "Must be one of: usage, damaged, expired, other",
}

// SetupValidator registers the export_reason tag on gin's validator and
// makes error messages report JSON field names instead of Go field names.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("export_reason", func(fl validator.FieldLevel) bool {
		return inventory.ExportReason(fl.Field().String()).IsValid()
	})
}

// HandleValidationError writes a 400 response listing every failed field
func HandleValidationError(c *gin.Context, err error) {
	var details []dto.ValidationDetail
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}

	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestIDFromContext(c),
		details,
	))
}

func getRequestIDFromContext(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

func getValidationMessage(e validator.FieldError) string {
	if msg, ok := plainTagMessages[e.Tag()]; ok {
		return msg
	}

	characters := ""
	if e.Type().Kind() == reflect.String {
		characters = " characters"
	}

	switch e.Tag() {
	case "min":
		return "Must be at least " + e.Param() + characters
	case "max":
		return "Must be at most " + e.Param() + characters
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}

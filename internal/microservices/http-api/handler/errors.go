package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"carhub/internal/ingestion/vpic"
	"carhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report request field names, not Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bind decodes JSON or form bodies. An empty body is validated as a zero value
// so missing fields are reported per field.
func bind(c *gin.Context, obj any) error {
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// respondBindError reports a request body that failed to decode or validate.
func respondBindError(c *gin.Context, err error) {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, translateFieldErrors(fieldErrs))
	case errors.As(err, &typeErr):
		c.JSON(http.StatusBadRequest, gin.H{typeErr.Field: []string{typeMessage(typeErr.Type.Kind())}})
	case errors.As(err, &syntaxErr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("JSON parse error - %s", syntaxErr.Error())})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	}
}

// respondError maps service and lookup errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)

	// lookup failures carry their message as the only detail
	case errors.Is(err, vpic.ErrUnknownMake), errors.Is(err, vpic.ErrUnknownModel), errors.Is(err, vpic.ErrMissingInput):
		c.JSON(http.StatusBadRequest, []string{lookupMessage(err)})
	case errors.Is(err, vpic.ErrUpstreamUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": vpic.ErrUpstreamUnavailable.Error()})

	case errors.Is(err, service.ErrCarNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrCarNotFound.Error()})
	case errors.Is(err, service.ErrCarExists):
		c.JSON(http.StatusBadRequest, gin.H{"model": []string{service.ErrCarExists.Error()}})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAdminDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	default:
		_ = c.Error(err)
		slog.Error("unhandled request error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func lookupMessage(err error) string {
	for _, known := range []error{vpic.ErrUnknownMake, vpic.ErrUnknownModel, vpic.ErrMissingInput} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}

func translateFieldErrors(errs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		name := fe.Field()
		out[name] = append(out[name], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	isNumber := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		isNumber = true
	}

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if isNumber {
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return "This list may not be empty."
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		if isNumber {
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

func typeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.Slice:
		return "Expected a list of items."
	default:
		return "Not a valid string."
	}
}

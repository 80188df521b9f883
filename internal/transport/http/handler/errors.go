package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"petspotter/internal/app"
	"petspotter/internal/logging"
	"petspotter/internal/transport/http/response"
)

var registerTagNameOnce sync.Once

// UseJSONFieldNames makes validation errors report json field names
// instead of Go struct field names.
func UseJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

type notFound struct {
	code    int
	message string
}

var (
	listingNotFound = notFound{code: response.CodeListingNotFound, message: "Listing not found"}
	imageNotFound   = notFound{code: response.CodeImageNotFound, message: "Image not found"}
	userNotFound    = notFound{code: response.CodeUserNotFound, message: "User not found"}
)

func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		response.ErrorWithFields(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
		return
	}
	response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid request payload")
}

func writeServiceError(c *gin.Context, err error, nf notFound) {
	var dup *app.DuplicateKeyError
	switch {
	case errors.As(err, &dup):
		response.ErrorWithFields(c, http.StatusBadRequest, response.CodeDuplicateKey, "Duplicate value", dup.Fields)
	case errors.Is(err, app.ErrBadFilter):
		c.AbortWithStatus(http.StatusBadRequest)
	case errors.Is(err, app.ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Validation failed")
	case errors.Is(err, app.ErrBadRequest):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid request")
	case errors.Is(err, app.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Not authenticated")
	case errors.Is(err, app.ErrNotFound):
		response.Error(c, http.StatusNotFound, nf.code, nf.message)
	case errors.Is(err, app.ErrServiceUnavailable):
		response.Unavailable(c)
	default:
		logging.With("http").Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "Internal server error")
	}
}

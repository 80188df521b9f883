package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeBadRequest      = 40000
	CodeValidation      = 40001
	CodeDuplicateKey    = 40002
	CodeUnauthorized    = 40100
	CodeUserNotFound    = 40401
	CodeListingNotFound = 40402
	CodeImageNotFound   = 40403
	CodeInternalServer  = 50000
)

type ErrorResponse struct {
	Success bool              `json:"success"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func ErrorWithFields(c *gin.Context, httpStatus, code int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Code:    code,
		Message: message,
		Fields:  fields,
	})
}

// Unavailable is the readiness short-circuit body.
func Unavailable(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service not available"})
}

package response

import (
	"github.com/gin-gonic/gin"
)

// The admin console consumes bare JSON bodies ({"classrooms": [...]}),
// so success responses write the payload directly with no envelope.
// Errors carry a structured body so clients can distinguish failure kinds.

// ErrorBody represents a structured error response.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success sends a successful JSON response with the given status code and
// payload. The payload is the response body; list endpoints pass
// gin.H{"<entity>": items}.
func Success(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, gin.H{"error": ErrorBody{Code: code, Message: GetMessage(code)}})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, gin.H{"error": ErrorBody{Code: code, Message: GetMessage(code), Fields: fields}})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": ErrorBody{Code: code, Message: GetMessage(code)}})
}

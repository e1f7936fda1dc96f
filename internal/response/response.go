package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stemsi/sekolah-console/internal/formerror"
)

// Response is the envelope every console view is returned in.
type Response struct {
	Data     interface{} `json:"data"`
	Error    *ErrorBody  `json:"error,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// ErrorBody describes why the view was not rendered. Fields and General
// carry form errors; Form echoes what was submitted so it can be re-shown.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	General string            `json:"general,omitempty"`
	Form    interface{}       `json:"form,omitempty"`
}

// Metadata includes request tracing and timing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Success sends data with the given status code.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Data:     data,
		Metadata: buildMetadata(c),
	})
}

// Fail sends an error code with its standard message.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	FailWithMessage(c, statusCode, code, GetMessage(code))
}

// FailWithMessage sends an error code with a specific message.
func FailWithMessage(c *gin.Context, statusCode int, code ErrCode, message string) {
	c.JSON(statusCode, Response{
		Error:    &ErrorBody{Code: code, Message: message},
		Metadata: buildMetadata(c),
	})
}

// FailForm rejects a form submission, keeping what the user entered.
func FailForm(c *gin.Context, statusCode int, res formerror.Result, submitted interface{}) {
	msg := res.GeneralError
	if msg == "" {
		msg = GetMessage(ErrValidation)
	}
	c.JSON(statusCode, Response{
		Error: &ErrorBody{
			Code:    ErrValidation,
			Message: msg,
			Fields:  res.FieldErrors,
			General: res.GeneralError,
			Form:    submitted,
		},
		Metadata: buildMetadata(c),
	})
}

// AbortFail aborts the middleware chain with an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, Response{
		Error:    &ErrorBody{Code: code, Message: GetMessage(code)},
		Metadata: buildMetadata(c),
	})
}

// AbortRedirect aborts the chain with a 303 to target, also naming target in
// the body for clients that do not follow redirects.
func AbortRedirect(c *gin.Context, target string, code ErrCode) {
	c.Header("Location", target)
	c.AbortWithStatusJSON(http.StatusSeeOther, Response{
		Error:    &ErrorBody{Code: code, Message: GetMessage(code)},
		Redirect: target,
		Metadata: buildMetadata(c),
	})
}

// Redirect sends a 303 to target without an error.
func Redirect(c *gin.Context, target string) {
	c.Header("Location", target)
	c.AbortWithStatusJSON(http.StatusSeeOther, Response{
		Redirect: target,
		Metadata: buildMetadata(c),
	})
}

func buildMetadata(c *gin.Context) Metadata {
	reqID, _ := c.Get(ContextKeyRequestID)
	id, ok := reqID.(string)
	if !ok || id == "" {
		id = uuid.New().String()
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

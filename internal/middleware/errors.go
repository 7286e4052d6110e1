package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const genericMessage = "Something went wrong please try again"

// AppError carries a client-facing message and an optional HTTP status.
// A zero Status is answered with 500.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

// Fail records err on the context and stops the chain; ErrorResponder writes the reply.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorResponder 统一错误出口：{"message": ...}，未指定状态码时为 500
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status := http.StatusInternalServerError
		message := genericMessage

		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.Status != 0 {
				status = appErr.Status
			}
			message = appErr.Message
		}

		entry := logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"status":     status,
			"path":       c.FullPath(),
		})
		if status >= http.StatusInternalServerError {
			entry.WithError(err).Error("request failed")
		} else {
			entry.Debug(message)
		}

		c.JSON(status, gin.H{"message": message})
	}
}

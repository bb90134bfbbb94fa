package response

import (
	"net/http"

	"store/application/command"

	"github.com/gin-gonic/gin"
)

func HandleSuccess(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: GetRequestID(c),
	})
}

func HandleCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: GetRequestID(c),
	})
}

// HandleCommand writes a command result as is: successStatus when it
// succeeded, 400 with the notifications as data when it did not. A non-nil
// err is an infrastructure failure and goes through HandleAppError.
func HandleCommand[T any](c *gin.Context, result *command.Result[T], err error, successStatus int) {
	if err != nil {
		HandleAppError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(successStatus, result)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvform/internal/errcode"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrorWithCode 在错误消息之外附带业务错误码。
func ErrorWithCode(c *gin.Context, status, code int, msg string) {
	c.JSON(status, gin.H{"error": msg, "code": code})
}

// ValidationFailed 返回 422 以及每个字段的错误消息。
func ValidationFailed(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "validation failed",
		"code":   errcode.ValidationFailed,
		"fields": fields,
	})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string) {
	ErrorWithCode(c, http.StatusNotFound, errcode.EntryNotFound, msg)
}
func Internal(c *gin.Context, msg string) {
	ErrorWithCode(c, http.StatusInternalServerError, errcode.SystemError, msg)
}

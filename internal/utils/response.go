package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errorMessage = "An error occurred"

// ResponseData is the envelope every endpoint answers with.
type ResponseData struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, body ResponseData) {
	c.JSON(body.Status, body)
}

// Success answers 200 with data.
func Success(c *gin.Context, message string, data any) {
	respond(c, ResponseData{Status: http.StatusOK, Message: message, Data: data})
}

// Created answers 201 with the new resource.
func Created(c *gin.Context, message string, data any) {
	respond(c, ResponseData{Status: http.StatusCreated, Message: message, Data: data})
}

// Error answers statusCode with a failure description.
func Error(c *gin.Context, statusCode int, reason string) {
	respond(c, ResponseData{Status: statusCode, Message: errorMessage, Error: reason})
}

// ErrorWithData is Error plus a payload, e.g. the actions still open to the caller.
func ErrorWithData(c *gin.Context, statusCode int, reason string, data any) {
	respond(c, ResponseData{Status: statusCode, Message: errorMessage, Data: data, Error: reason})
}

func BadRequest(c *gin.Context, reason string)   { Error(c, http.StatusBadRequest, reason) }
func Unauthorized(c *gin.Context, reason string) { Error(c, http.StatusUnauthorized, reason) }
func Forbidden(c *gin.Context, reason string)    { Error(c, http.StatusForbidden, reason) }
func NotFound(c *gin.Context, reason string)     { Error(c, http.StatusNotFound, reason) }
func Conflict(c *gin.Context, reason string)     { Error(c, http.StatusConflict, reason) }

func InternalServerError(c *gin.Context, reason string) {
	Error(c, http.StatusInternalServerError, reason)
}

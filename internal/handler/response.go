package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inboundlogistics/internal/metrics"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// Fail maps the calculation error taxonomy onto HTTP statuses: bad input is
// the caller's fault, upstream data failures are a bad gateway, anything
// else is internal.
func Fail(c *gin.Context, err error) {
	switch {
	case metrics.IsValidation(err):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case metrics.IsDataAccess(err):
		Error(c, http.StatusBadGateway, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

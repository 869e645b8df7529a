package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/plantify/pkg/apperror"
	"github.com/oksasatya/plantify/pkg/response"
	"github.com/oksasatya/plantify/pkg/validation"
)

// bindJSON decodes and validates the body into dst. On failure it writes a
// VALIDATION_ERROR response and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		details := validation.ToDetails(err)
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, validation.Message(details), details)
		return false
	}
	return true
}

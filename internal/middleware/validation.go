package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/school/internal/app/models/dto"
)

// BindJSON binds the request body into obj and runs its `binding` rules. On failure it
// writes a 400 with one entry per invalid field and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

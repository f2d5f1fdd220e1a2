package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/school/internal/app/models/dto"
	"github.com/yigit/school/internal/pkg/apperrors"
)

// parseIDParam parses a positive int64 path parameter
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("%s must be a positive integer", paramName))
	}
	return id, nil
}

// parseIntQuery parses a required integer query parameter
func parseIntQuery(ctx *gin.Context, name string) (int, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("query parameter %s is required", name))
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("query parameter %s must be an integer", name))
	}
	return value, nil
}

// respond writes data wrapped in a successful APIResponse
func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewSuccessResponse(data))
}

func respondMessage(ctx *gin.Context, message string) {
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: message})
}

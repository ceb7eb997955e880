package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"clinic-room-allocation/internal/service"
	"clinic-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service failures onto HTTP status codes. Unknown
// errors are attached to the context for the access log and answered with
// fallback.
func handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrNoCapacity):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, fallback)
	}
}

func parseRoomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON binds a JSON body that may be absent altogether
func bindOptionalJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luminakids/storyreel-backend/internal/http/response"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
)

var errMissingSearchParams = errors.New("theme and safe_zone (or class) are required")

// respondServiceError translates service sentinels into HTTP statuses so
// every handler maps failures the same way.
func respondServiceError(c *gin.Context, code string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrNotReady):
		status = http.StatusConflict
	}
	response.RespondError(c, status, code, err)
}

func requestDBC(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

package controller

import (
	"course_market_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleServiceError 将服务层哨兵错误映射为 HTTP 状态码，
// 未识别的错误一律按存储故障记日志后返回 500
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrChapterNotFound),
		errors.Is(err, util.ErrCategoryNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrNotPurchased):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrPositionConflict),
		errors.Is(err, util.ErrAlreadyPurchased),
		errors.Is(err, util.ErrCategoryInUse):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrCourseIncomplete),
		errors.Is(err, util.ErrChapterIncomplete):
		util.Error(ctx, http.StatusBadRequest, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

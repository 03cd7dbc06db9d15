package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type setCompletionRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

// @Summary 标记章节完成状态
// @Description 幂等写入当前用户对章节的完成标志，付费章节需已购买课程
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param chapterId path string true "章节ID"
// @Param body body setCompletionRequest true "完成标志"
// @Success 200 {object} util.Response
// @Router /api/chapters/{chapterId}/progress [put]
func (c *ProgressController) SetCompletion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req setCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.SetChapterCompletion(user.UserID, ctx.Param("chapterId"), *req.IsCompleted)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	monitoring.ProgressToggleCounter.Inc()
	util.Success(ctx, progress)
}

// @Summary 查询课程完成百分比
// @Description 按已发布章节口径实时重算，无已发布章节返回 0
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	percentage, err := c.ProgressService.GetCourseProgress(user.UserID, ctx.Param("courseId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"progress": percentage})
}

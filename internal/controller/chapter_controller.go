package controller

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChapterController struct {
	ChapterService *service.ChapterService
	MediaService   *service.MediaService
}

func NewChapterController(chapterService *service.ChapterService, mediaService *service.MediaService) *ChapterController {
	return &ChapterController{
		ChapterService: chapterService,
		MediaService:   mediaService,
	}
}

type createChapterRequest struct {
	Title string `json:"title" binding:"required"`
}

type reorderRequest struct {
	List []model.ChapterPosition `json:"list" binding:"required,min=1,dive"`
}

// @Summary 创建章节
// @Description 新章节追加到课程末尾
// @Tags 章节管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param body body createChapterRequest true "章节标题"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req createChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.ChapterService.CreateChapter(user.UserID, ctx.Param("courseId"), req.Title)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, chapter)
}

// @Summary 章节列表
// @Description 按排序位置返回课程的全部章节
// @Tags 章节管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters [get]
func (c *ChapterController) GetChapters(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	chapters, err := c.ChapterService.GetChapters(user.UserID, ctx.Param("courseId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, chapters)
}

// @Summary 章节详情
// @Tags 章节管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param chapterId path string true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters/{chapterId} [get]
func (c *ChapterController) GetChapter(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	chapter, err := c.ChapterService.GetChapter(user.UserID, ctx.Param("courseId"), ctx.Param("chapterId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, chapter)
}

// @Summary 更新章节
// @Tags 章节管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param chapterId path string true "章节ID"
// @Param body body service.UpdateChapterRequest true "待更新字段"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters/{chapterId} [patch]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.ChapterService.UpdateChapter(user.UserID, ctx.Param("courseId"), ctx.Param("chapterId"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, chapter)
}

// @Summary 批量调整章节顺序
// @Description 整批校验通过后一次事务写入，任一章节不合法则全部不生效
// @Tags 章节管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param body body reorderRequest true "章节ID与目标位置列表"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters/reorder [put]
func (c *ChapterController) ReorderChapters(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ChapterService.ReorderChapters(user.UserID, ctx.Param("courseId"), req.List); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "chapters reordered"})
}

// @Summary 上传章节视频
// @Description 上传视频文件，探测时长分辨率并生成封面帧，替换章节既有视频资产
// @Tags 章节管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param chapterId path string true "章节ID"
// @Param file formData file true "视频文件"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters/{chapterId}/video [post]
func (c *ChapterController) UploadVideo(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	result, err := c.MediaService.UploadChapterVideo(ctx.Request.Context(), file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	asset, err := c.ChapterService.SetVideo(user.UserID, ctx.Param("courseId"), ctx.Param("chapterId"), result.URL, result.Info)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"asset":        asset,
		"thumbnailUrl": result.ThumbnailURL,
	})
}

// @Summary 发布章节
// @Description 标题、描述、视频齐备才可发布
// @Tags 章节管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param chapterId path string true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters/{chapterId}/publish [patch]
func (c *ChapterController) PublishChapter(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ChapterService.PublishChapter(user.UserID, ctx.Param("courseId"), ctx.Param("chapterId")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "chapter published"})
}

// @Summary 下架章节
// @Description 课程最后一个已发布章节被下架时课程同步下架
// @Tags 章节管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param chapterId path string true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters/{chapterId}/unpublish [patch]
func (c *ChapterController) UnpublishChapter(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ChapterService.UnpublishChapter(user.UserID, ctx.Param("courseId"), ctx.Param("chapterId")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "chapter unpublished"})
}

// @Summary 删除章节
// @Tags 章节管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param chapterId path string true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/chapters/{chapterId} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ChapterService.DeleteChapter(user.UserID, ctx.Param("courseId"), ctx.Param("chapterId")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "chapter deleted"})
}

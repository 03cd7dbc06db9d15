package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	MediaService  *service.MediaService
}

func NewCourseController(courseService *service.CourseService, mediaService *service.MediaService) *CourseController {
	return &CourseController{
		CourseService: courseService,
		MediaService:  mediaService,
	}
}

type createCourseRequest struct {
	Title string `json:"title" binding:"required"`
}

// @Summary 创建课程
// @Description 教师创建草稿课程，只需标题，其余信息后续补全
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body createCourseRequest true "课程标题"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req createCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(user.UserID, req.Title)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// @Summary 我的课程列表
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.GetTeacherCourses(user.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// @Summary 课程详情（含章节与附件）
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.CourseService.GetCourse(user.UserID, ctx.Param("courseId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 更新课程信息
// @Description 局部更新标题、描述、价格、分类、封面地址
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param body body service.UpdateCourseRequest true "待更新字段"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(user.UserID, ctx.Param("courseId"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 上传课程封面
// @Tags 课程管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param file formData file true "封面图片"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/image [post]
func (c *CourseController) UploadImage(ctx *gin.Context) {
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

	url, err := c.MediaService.UploadCourseImage(ctx.Request.Context(), file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(user.UserID, ctx.Param("courseId"), service.UpdateCourseRequest{ImageURL: &url})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 发布课程
// @Description 标题、描述、封面、分类齐备且至少一个已发布章节才可发布
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/publish [patch]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.PublishCourse(user.UserID, ctx.Param("courseId")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "course published"})
}

// @Summary 下架课程
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/unpublish [patch]
func (c *CourseController) UnpublishCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.UnpublishCourse(user.UserID, ctx.Param("courseId")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "course unpublished"})
}

// @Summary 删除课程
// @Description 级联删除章节、附件、购买与进度记录
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteCourse(user.UserID, ctx.Param("courseId")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "course deleted"})
}

// @Summary 上传课程附件
// @Tags 课程管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param file formData file true "附件文件"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses/{courseId}/attachments [post]
func (c *CourseController) UploadAttachment(ctx *gin.Context) {
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

	name, url, err := c.MediaService.UploadAttachment(ctx.Request.Context(), file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attachment, err := c.CourseService.AddAttachment(user.UserID, ctx.Param("courseId"), name, url)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, attachment)
}

// @Summary 删除课程附件
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param attachmentId path string true "附件ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/attachments/{attachmentId} [delete]
func (c *CourseController) DeleteAttachment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteAttachment(user.UserID, ctx.Param("courseId"), ctx.Param("attachmentId")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "attachment deleted"})
}

package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService  *service.CatalogService
	CategoryService *service.CategoryService
}

func NewCatalogController(catalogService *service.CatalogService, categoryService *service.CategoryService) *CatalogController {
	return &CatalogController{
		CatalogService:  catalogService,
		CategoryService: categoryService,
	}
}

// @Summary 浏览课程目录
// @Description 已发布课程列表，支持标题模糊与分类过滤；登录用户的已购课程附带进度
// @Tags 课程目录
// @Produce json
// @Param title query string false "标题关键字"
// @Param categoryId query string false "分类ID"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CatalogController) BrowseCourses(ctx *gin.Context) {
	userID := ""
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
	}

	courses, err := c.CatalogService.BrowseCourses(userID, ctx.Query("title"), ctx.Query("categoryId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// @Summary 课程分类列表
// @Tags 课程目录
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *CatalogController) GetCategories(ctx *gin.Context) {
	categories, err := c.CategoryService.GetCategories()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

// @Summary 章节播放页
// @Description 返回章节、课程、视频与附件信息；付费章节未购买时不含视频地址
// @Tags 课程目录
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param chapterId path string true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/chapters/{chapterId} [get]
func (c *CatalogController) GetPlayer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	payload, err := c.CatalogService.GetPlayerPayload(user.UserID, ctx.Param("courseId"), ctx.Param("chapterId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, payload)
}

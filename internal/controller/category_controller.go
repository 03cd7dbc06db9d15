package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary 创建分类
// @Tags 分类管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body categoryRequest true "分类名称"
// @Success 201 {object} util.Response
// @Router /api/admin/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.CreateCategory(req.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, category)
}

// @Summary 重命名分类
// @Tags 分类管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param categoryId path string true "分类ID"
// @Param body body categoryRequest true "新名称"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{categoryId} [patch]
func (c *CategoryController) RenameCategory(ctx *gin.Context) {
	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.RenameCategory(ctx.Param("categoryId"), req.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, category)
}

// @Summary 删除分类
// @Description 仍有课程引用的分类不允许删除
// @Tags 分类管理
// @Produce json
// @Security ApiKeyAuth
// @Param categoryId path string true "分类ID"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{categoryId} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	if err := c.CategoryService.DeleteCategory(ctx.Param("categoryId")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "category deleted"})
}

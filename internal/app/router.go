package app

import (
	"course_market_backend/docs"
	"course_market_backend/internal/config"
	"course_market_backend/internal/middleware"
	"course_market_backend/internal/model"
	"course_market_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（游客可浏览课程目录，登录用户附带购买与进度信息）
	a.registerPublicRoutes(router, c, cfg)

	// 2. 学生授权接口
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 教师接口
	teacherGroup := router.Group("/api/teacher")
	teacherGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		a.registerTeacherRoutes(teacherGroup, c)
	}

	// 4. 管理员接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		a.registerAdminRoutes(adminGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/categories", c.catalog.GetCategories)

		// 可选认证：游客拿到公开目录，登录用户额外拿到进度
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.catalog.BrowseCourses)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/courses/:courseId/chapters/:chapterId", c.catalog.GetPlayer)
	rg.GET("/courses/:courseId/progress", c.progress.GetCourseProgress)
	rg.PUT("/chapters/:chapterId/progress", c.progress.SetCompletion)
	rg.POST("/courses/:courseId/checkout", c.purchase.Checkout)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/dashboard", c.dashboard.GetOverview)

	rg.POST("/courses", c.course.CreateCourse)
	rg.GET("/courses", c.course.GetCourses)
	rg.GET("/courses/:courseId", c.course.GetCourse)
	rg.PATCH("/courses/:courseId", c.course.UpdateCourse)
	rg.DELETE("/courses/:courseId", c.course.DeleteCourse)
	rg.POST("/courses/:courseId/image", c.course.UploadImage)
	rg.PATCH("/courses/:courseId/publish", c.course.PublishCourse)
	rg.PATCH("/courses/:courseId/unpublish", c.course.UnpublishCourse)
	rg.POST("/courses/:courseId/attachments", c.course.UploadAttachment)
	rg.DELETE("/courses/:courseId/attachments/:attachmentId", c.course.DeleteAttachment)

	rg.POST("/courses/:courseId/chapters", c.chapter.CreateChapter)
	rg.GET("/courses/:courseId/chapters", c.chapter.GetChapters)
	rg.PUT("/courses/:courseId/chapters/reorder", c.chapter.ReorderChapters)
	rg.GET("/courses/:courseId/chapters/:chapterId", c.chapter.GetChapter)
	rg.PATCH("/courses/:courseId/chapters/:chapterId", c.chapter.UpdateChapter)
	rg.DELETE("/courses/:courseId/chapters/:chapterId", c.chapter.DeleteChapter)
	rg.POST("/courses/:courseId/chapters/:chapterId/video", c.chapter.UploadVideo)
	rg.PATCH("/courses/:courseId/chapters/:chapterId/publish", c.chapter.PublishChapter)
	rg.PATCH("/courses/:courseId/chapters/:chapterId/unpublish", c.chapter.UnpublishChapter)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/categories", c.category.CreateCategory)
	rg.PATCH("/categories/:categoryId", c.category.RenameCategory)
	rg.DELETE("/categories/:categoryId", c.category.DeleteCategory)

	// 支付回调确认入账
	rg.POST("/purchases", c.purchase.RecordPurchase)
}

package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type PurchaseController struct {
	PurchaseService *service.PurchaseService
}

func NewPurchaseController(purchaseService *service.PurchaseService) *PurchaseController {
	return &PurchaseController{PurchaseService: purchaseService}
}

type recordPurchaseRequest struct {
	UserID   string `json:"userId" binding:"required"`
	CourseID string `json:"courseId" binding:"required"`
}

// @Summary 发起购买结算
// @Description 免费课程直接入账，付费课程创建支付会话并返回跳转地址
// @Tags 购买
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/checkout [post]
func (c *PurchaseController) Checkout(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.PurchaseService.CreateCheckout(ctx.Request.Context(), user.UserID, ctx.Param("courseId"))
	if err != nil {
		monitoring.CheckoutCounter.WithLabelValues("failed").Inc()
		handleServiceError(ctx, err)
		return
	}

	if session.Free {
		monitoring.CheckoutCounter.WithLabelValues("free").Inc()
	} else {
		monitoring.CheckoutCounter.WithLabelValues("created").Inc()
	}
	util.Success(ctx, session)
}

// @Summary 确认购买入账
// @Description 支付回调侧调用，幂等写入购买记录
// @Tags 购买
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body recordPurchaseRequest true "购买人和课程"
// @Success 201 {object} util.Response
// @Router /api/admin/purchases [post]
func (c *PurchaseController) RecordPurchase(ctx *gin.Context) {
	var req recordPurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	purchase, err := c.PurchaseService.RecordPurchase(req.UserID, req.CourseID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, purchase)
}

package service

import (
	"context"
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"
	"errors"
	"math"

	"gorm.io/gorm"
)

type PurchaseService struct {
	PurchaseRepo PurchaseStore
	CourseRepo   CourseStore
	Payment      PaymentProvider
	Currency     string
}

func NewPurchaseService(purchaseRepo PurchaseStore, courseRepo CourseStore, payment PaymentProvider, currency string) *PurchaseService {
	return &PurchaseService{
		PurchaseRepo: purchaseRepo,
		CourseRepo:   courseRepo,
		Payment:      payment,
		Currency:     currency,
	}
}

// CreateCheckout 为已发布课程创建结账会话。免费课程跳过支付直接入库；
// 重复购买返回冲突。支付平台故障原样上抛，不做重试。
func (s *PurchaseService) CreateCheckout(ctx context.Context, userID, courseID string) (*CheckoutSession, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	// 未发布课程对学员不可见
	if !course.IsPublished {
		return nil, util.ErrCourseNotFound
	}

	exists, err := s.PurchaseRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyPurchased
	}

	if course.Price <= 0 {
		if _, err := s.RecordPurchase(userID, courseID); err != nil {
			return nil, err
		}
		return &CheckoutSession{Free: true}, nil
	}

	return s.Payment.CreateCheckoutSession(ctx, CheckoutRequest{
		UserID:      userID,
		CourseID:    courseID,
		CourseTitle: course.Title,
		Amount:      int64(math.Round(course.Price * 100)),
		Currency:    s.Currency,
	})
}

// RecordPurchase 幂等入库，由支付确认通道或免费课程路径调用。
// 已存在记录时返回现有记录，不视为错误。
func (s *PurchaseService) RecordPurchase(userID, courseID string) (*model.Purchase, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if existing, err := s.PurchaseRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	purchase := &model.Purchase{
		UserID:   userID,
		CourseID: courseID,
		Price:    course.Price,
	}
	if err := s.PurchaseRepo.Create(purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

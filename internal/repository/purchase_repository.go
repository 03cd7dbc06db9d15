package repository

import (
	"course_market_backend/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func (r *PurchaseRepository) Create(purchase *model.Purchase) error {
	return r.DB.Create(purchase).Error
}

func (r *PurchaseRepository) FindByUserAndCourse(userID, courseID string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepository) Exists(userID, courseID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// PurchasedCourseIDs 用户已购课程ID集合，目录页进度装饰用
func (r *PurchaseRepository) PurchasedCourseIDs(userID string) (map[string]bool, error) {
	var purchases []model.Purchase
	if err := r.DB.Where("user_id = ?", userID).Find(&purchases).Error; err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(purchases))
	for _, p := range purchases {
		ids[p.CourseID] = true
	}
	return ids, nil
}

// SalesByTeacher 教师名下各课程的销量与按成交价口径的营收
func (r *PurchaseRepository) SalesByTeacher(teacherID string) ([]model.CourseSales, error) {
	var sales []model.CourseSales
	err := r.DB.Model(&model.Purchase{}).
		Select("courses.id AS course_id, courses.title AS title, COUNT(purchases.id) AS sales, COALESCE(SUM(purchases.price), 0) AS revenue").
		Joins("JOIN courses ON courses.id = purchases.course_id").
		Where("courses.user_id = ?", teacherID).
		Group("courses.id, courses.title").
		Scan(&sales).Error
	return sales, err
}

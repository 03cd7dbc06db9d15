package repository

import (
	"course_market_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(id string) (*model.Category, error) {
	var category model.Category
	if err := r.DB.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(category *model.Category) error {
	return r.DB.Save(category).Error
}

func (r *CategoryRepository) Delete(id string) error {
	return r.DB.Delete(&model.Category{}, "id = ?", id).Error
}

// CountCourses 统计引用该分类的课程数，删除前校验用
func (r *CategoryRepository) CountCourses(categoryID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

package repository

import (
	"course_market_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	if err := r.DB.Preload("Category").First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDWithDetails 带分类、附件和按位置排序的章节
func (r *CourseRepository) FindByIDWithDetails(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Category").
		Preload("Attachments").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapters.position ASC")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByTeacher(userID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

// FindPublished 目录查询：已发布课程，可按标题模糊和分类过滤，
// 预加载已发布章节用于计算章节数
func (r *CourseRepository) FindPublished(title, categoryID string) ([]model.Course, error) {
	query := r.DB.Preload("Category").
		Preload("Chapters", "is_published = ?", true).
		Where("is_published = ?", true)

	if title != "" {
		query = query.Where("title LIKE ?", "%"+title+"%")
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var courses []model.Course
	err := query.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 依赖外键级联清理章节、附件、购买与进度记录
func (r *CourseRepository) Delete(id string) error {
	return r.DB.Select("Chapters", "Attachments", "Purchases").
		Delete(&model.Course{UUIDBase: model.UUIDBase{ID: id}}).Error
}

package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// CategoryService 课程分类管理（管理员）
type CategoryService struct {
	CategoryRepo CategoryStore
}

func NewCategoryService(categoryRepo CategoryStore) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

func (s *CategoryService) GetCategories() ([]model.Category, error) {
	return s.CategoryRepo.FindAll()
}

func (s *CategoryService) CreateCategory(name string) (*model.Category, error) {
	category := &model.Category{Name: name}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) RenameCategory(id, name string) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	category.Name = name
	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 仍被课程引用的分类不允许删除
func (s *CategoryService) DeleteCategory(id string) error {
	if _, err := s.CategoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCategoryNotFound
		}
		return err
	}

	inUse, err := s.CategoryRepo.CountCourses(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return util.ErrCategoryInUse
	}

	return s.CategoryRepo.Delete(id)
}

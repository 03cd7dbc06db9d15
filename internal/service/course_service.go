package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     CourseStore
	ChapterRepo    ChapterStore
	AttachmentRepo AttachmentStore
	CategoryRepo   CategoryStore
	Catalog        *CatalogService
}

func NewCourseService(courseRepo CourseStore, chapterRepo ChapterStore, attachmentRepo AttachmentStore, categoryRepo CategoryStore, catalog *CatalogService) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		ChapterRepo:    chapterRepo,
		AttachmentRepo: attachmentRepo,
		CategoryRepo:   categoryRepo,
		Catalog:        catalog,
	}
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Price       *float64 `json:"price"`
	CategoryID  *string  `json:"categoryId"`
}

func (s *CourseService) CreateCourse(teacherID, title string) (*model.Course, error) {
	course := &model.Course{
		UserID: teacherID,
		Title:  title,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetTeacherCourses(teacherID string) ([]model.Course, error) {
	return s.CourseRepo.FindByTeacher(teacherID)
}

func (s *CourseService) GetCourse(teacherID, courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByIDWithDetails(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.UserID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) owned(teacherID, courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.UserID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(teacherID, courseID string, req UpdateCourseRequest) (*model.Course, error) {
	course, err := s.owned(teacherID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.ImageURL != nil {
		course.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			course.CategoryID = nil
		} else {
			if _, err := s.CategoryRepo.FindByID(*req.CategoryID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, util.ErrCategoryNotFound
				}
				return nil, err
			}
			course.CategoryID = req.CategoryID
		}
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	// 已发布课程的资料变更要反映到目录缓存
	if course.IsPublished && s.Catalog != nil {
		s.Catalog.InvalidateCache()
	}
	return course, nil
}

// PublishCourse 发布门槛：标题、描述、封面、分类齐备且至少一个已发布章节
func (s *CourseService) PublishCourse(teacherID, courseID string) error {
	course, err := s.owned(teacherID, courseID)
	if err != nil {
		return err
	}

	published, err := s.ChapterRepo.CountPublished(courseID)
	if err != nil {
		return err
	}

	if course.Title == "" || course.Description == "" || course.ImageURL == "" ||
		course.CategoryID == nil || published == 0 {
		return util.ErrCourseIncomplete
	}

	if err := s.CourseRepo.UpdateFields(courseID, map[string]interface{}{"is_published": true}); err != nil {
		return err
	}
	if s.Catalog != nil {
		s.Catalog.InvalidateCache()
	}
	return nil
}

func (s *CourseService) UnpublishCourse(teacherID, courseID string) error {
	if _, err := s.owned(teacherID, courseID); err != nil {
		return err
	}

	if err := s.CourseRepo.UpdateFields(courseID, map[string]interface{}{"is_published": false}); err != nil {
		return err
	}
	if s.Catalog != nil {
		s.Catalog.InvalidateCache()
	}
	return nil
}

func (s *CourseService) DeleteCourse(teacherID, courseID string) error {
	if _, err := s.owned(teacherID, courseID); err != nil {
		return err
	}

	if err := s.CourseRepo.Delete(courseID); err != nil {
		return err
	}
	if s.Catalog != nil {
		s.Catalog.InvalidateCache()
	}
	return nil
}

func (s *CourseService) AddAttachment(teacherID, courseID, name, url string) (*model.Attachment, error) {
	if _, err := s.owned(teacherID, courseID); err != nil {
		return nil, err
	}

	attachment := &model.Attachment{
		Name:     name,
		URL:      url,
		CourseID: courseID,
	}
	if err := s.AttachmentRepo.Create(attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *CourseService) DeleteAttachment(teacherID, courseID, attachmentID string) error {
	if _, err := s.owned(teacherID, courseID); err != nil {
		return err
	}

	attachment, err := s.AttachmentRepo.FindByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	// 附件必须挂在该课程下
	if attachment.CourseID != courseID {
		return util.ErrPermissionDenied
	}

	return s.AttachmentRepo.Delete(attachmentID)
}

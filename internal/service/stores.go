package service

import "course_market_backend/internal/model"

// 数据访问接口，由 repository 包的具体类型满足。
// 按服务实际用到的最小面声明，测试时用内存桩替换。

type CourseStore interface {
	Create(course *model.Course) error
	FindByID(id string) (*model.Course, error)
	FindByIDWithDetails(id string) (*model.Course, error)
	FindByTeacher(userID string) ([]model.Course, error)
	FindPublished(title, categoryID string) ([]model.Course, error)
	Update(course *model.Course) error
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type ChapterStore interface {
	Create(chapter *model.Chapter) error
	FindByID(id string) (*model.Chapter, error)
	FindByIDInCourse(courseID, id string) (*model.Chapter, error)
	FindByCourse(courseID string) ([]model.Chapter, error)
	FindPublishedByCourse(courseID string) ([]model.Chapter, error)
	FindNextPublished(courseID string, position int) (*model.Chapter, error)
	MaxPosition(courseID string) (int, error)
	CountPublished(courseID string) (int64, error)
	Update(chapter *model.Chapter) error
	UpdateFields(id string, fields map[string]interface{}) error
	UpdatePositions(courseID string, updates []model.ChapterPosition) error
	Delete(id string) error
}

type ProgressStore interface {
	Upsert(userID, chapterID string, completed bool) (*model.UserProgress, error)
	FindByUserAndChapter(userID, chapterID string) (*model.UserProgress, error)
	CountCompleted(userID string, chapterIDs []string) (int64, error)
	CompletionMap(userID string, chapterIDs []string) (map[string]bool, error)
}

type PurchaseStore interface {
	Create(purchase *model.Purchase) error
	FindByUserAndCourse(userID, courseID string) (*model.Purchase, error)
	Exists(userID, courseID string) (bool, error)
	PurchasedCourseIDs(userID string) (map[string]bool, error)
	SalesByTeacher(teacherID string) ([]model.CourseSales, error)
}

type AttachmentStore interface {
	Create(attachment *model.Attachment) error
	FindByID(id string) (*model.Attachment, error)
	FindByCourse(courseID string) ([]model.Attachment, error)
	Delete(id string) error
}

type VideoAssetStore interface {
	Replace(asset *model.VideoAsset) error
	FindByChapter(chapterID string) (*model.VideoAsset, error)
	DeleteByChapter(chapterID string) error
}

type CategoryStore interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id string) (*model.Category, error)
	Update(category *model.Category) error
	Delete(id string) error
	CountCourses(categoryID string) (int64, error)
}

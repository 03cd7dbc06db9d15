package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ChapterService struct {
	ChapterRepo ChapterStore
	CourseRepo  CourseStore
	VideoRepo   VideoAssetStore
	Catalog     *CatalogService
}

func NewChapterService(chapterRepo ChapterStore, courseRepo CourseStore, videoRepo VideoAssetStore, catalog *CatalogService) *ChapterService {
	return &ChapterService{
		ChapterRepo: chapterRepo,
		CourseRepo:  courseRepo,
		VideoRepo:   videoRepo,
		Catalog:     catalog,
	}
}

type UpdateChapterRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsFree      *bool   `json:"isFree"`
}

// ownedCourse 校验课程存在且属于该教师
func (s *ChapterService) ownedCourse(teacherID, courseID string) (*model.Course, error) {
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

// CreateChapter 新章节追加到课程末尾
func (s *ChapterService) CreateChapter(teacherID, courseID, title string) (*model.Chapter, error) {
	if _, err := s.ownedCourse(teacherID, courseID); err != nil {
		return nil, err
	}

	maxPos, err := s.ChapterRepo.MaxPosition(courseID)
	if err != nil {
		return nil, err
	}

	chapter := &model.Chapter{
		Title:    title,
		CourseID: courseID,
		Position: maxPos + 1,
	}
	if err := s.ChapterRepo.Create(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) GetChapters(teacherID, courseID string) ([]model.Chapter, error) {
	if _, err := s.ownedCourse(teacherID, courseID); err != nil {
		return nil, err
	}
	return s.ChapterRepo.FindByCourse(courseID)
}

func (s *ChapterService) GetChapter(teacherID, courseID, chapterID string) (*model.Chapter, error) {
	if _, err := s.ownedCourse(teacherID, courseID); err != nil {
		return nil, err
	}
	chapter, err := s.ChapterRepo.FindByIDInCourse(courseID, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) UpdateChapter(teacherID, courseID, chapterID string, req UpdateChapterRequest) (*model.Chapter, error) {
	chapter, err := s.GetChapter(teacherID, courseID, chapterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Description != nil {
		chapter.Description = *req.Description
	}
	if req.IsFree != nil {
		chapter.IsFree = *req.IsFree
	}

	if err := s.ChapterRepo.Update(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// ReorderChapters 批量调整章节位置。先在内存里套用整个批次并校验
// 结果位置不重复、章节都属于该课程，然后单事务落库，部分生效不可见。
func (s *ChapterService) ReorderChapters(teacherID, courseID string, updates []model.ChapterPosition) error {
	if _, err := s.ownedCourse(teacherID, courseID); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}

	chapters, err := s.ChapterRepo.FindByCourse(courseID)
	if err != nil {
		return err
	}

	finalPositions := make(map[string]int, len(chapters))
	for _, chapter := range chapters {
		finalPositions[chapter.ID] = chapter.Position
	}

	for _, item := range updates {
		if _, ok := finalPositions[item.ID]; !ok {
			return util.ErrChapterNotFound
		}
		finalPositions[item.ID] = item.Position
	}

	seen := make(map[int]bool, len(finalPositions))
	for _, pos := range finalPositions {
		if seen[pos] {
			return util.ErrPositionConflict
		}
		seen[pos] = true
	}

	return s.ChapterRepo.UpdatePositions(courseID, updates)
}

// SetVideo 记录章节视频地址与 ffprobe 探测出的元数据，重传即整条替换
func (s *ChapterService) SetVideo(teacherID, courseID, chapterID, videoURL string, info *util.VideoInfo) (*model.VideoAsset, error) {
	chapter, err := s.GetChapter(teacherID, courseID, chapterID)
	if err != nil {
		return nil, err
	}

	asset := &model.VideoAsset{
		ChapterID:  chapter.ID,
		AssetID:    model.GenerateUUID(),
		PlaybackID: model.GenerateUUID(),
	}
	if info != nil {
		asset.Duration = info.Duration
		asset.Width = info.Width
		asset.Height = info.Height
	}

	if err := s.VideoRepo.Replace(asset); err != nil {
		return nil, err
	}

	chapter.VideoURL = videoURL
	if err := s.ChapterRepo.Update(chapter); err != nil {
		return nil, err
	}
	return asset, nil
}

// PublishChapter 发布前要求标题、描述和视频齐备
func (s *ChapterService) PublishChapter(teacherID, courseID, chapterID string) error {
	chapter, err := s.GetChapter(teacherID, courseID, chapterID)
	if err != nil {
		return err
	}

	if chapter.Title == "" || chapter.Description == "" || chapter.VideoURL == "" {
		return util.ErrChapterIncomplete
	}

	return s.ChapterRepo.UpdateFields(chapterID, map[string]interface{}{"is_published": true})
}

// UnpublishChapter 下架章节；课程若因此不再有已发布章节则一并下架
func (s *ChapterService) UnpublishChapter(teacherID, courseID, chapterID string) error {
	if _, err := s.GetChapter(teacherID, courseID, chapterID); err != nil {
		return err
	}

	if err := s.ChapterRepo.UpdateFields(chapterID, map[string]interface{}{"is_published": false}); err != nil {
		return err
	}

	return s.unpublishCourseIfEmpty(courseID)
}

// DeleteChapter 删除章节并级联清理进度与视频元数据
func (s *ChapterService) DeleteChapter(teacherID, courseID, chapterID string) error {
	if _, err := s.GetChapter(teacherID, courseID, chapterID); err != nil {
		return err
	}

	if err := s.ChapterRepo.Delete(chapterID); err != nil {
		return err
	}

	return s.unpublishCourseIfEmpty(courseID)
}

func (s *ChapterService) unpublishCourseIfEmpty(courseID string) error {
	published, err := s.ChapterRepo.CountPublished(courseID)
	if err != nil {
		return err
	}
	if published > 0 {
		return nil
	}

	if err := s.CourseRepo.UpdateFields(courseID, map[string]interface{}{"is_published": false}); err != nil {
		return err
	}
	if s.Catalog != nil {
		s.Catalog.InvalidateCache()
	}
	return nil
}

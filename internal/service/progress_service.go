package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// ProgressService 维护用户的章节完成记录，并按需重算课程完成百分比。
// 百分比不做增量维护：每次调用都重读已发布章节集合，保证永不过期。
type ProgressService struct {
	ProgressRepo ProgressStore
	ChapterRepo  ChapterStore
	CourseRepo   CourseStore
	PurchaseRepo PurchaseStore
}

func NewProgressService(progressRepo ProgressStore, chapterRepo ChapterStore, courseRepo CourseStore, purchaseRepo PurchaseStore) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		ChapterRepo:  chapterRepo,
		CourseRepo:   courseRepo,
		PurchaseRepo: purchaseRepo,
	}
}

// SetChapterCompletion 幂等写入完成标志。付费章节要求已购买课程，
// 校验不通过时不落任何记录。
func (s *ProgressService) SetChapterCompletion(userID, chapterID string, completed bool) (*model.UserProgress, error) {
	chapter, err := s.ChapterRepo.FindByID(chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	if !chapter.IsFree {
		purchased, err := s.PurchaseRepo.Exists(userID, chapter.CourseID)
		if err != nil {
			return nil, err
		}
		if !purchased {
			return nil, util.ErrNotPurchased
		}
	}

	return s.ProgressRepo.Upsert(userID, chapterID, completed)
}

// GetCourseProgress 课程完成百分比 = 已完成的已发布章节数 / 已发布章节数 × 100。
// 未发布章节不参与分母；没有已发布章节的课程按 0 处理，不报错。
func (s *ProgressService) GetCourseProgress(userID, courseID string) (float64, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrCourseNotFound
		}
		return 0, err
	}

	chapters, err := s.ChapterRepo.FindPublishedByCourse(courseID)
	if err != nil {
		return 0, err
	}
	if len(chapters) == 0 {
		return 0, nil
	}

	chapterIDs := make([]string, 0, len(chapters))
	for _, chapter := range chapters {
		chapterIDs = append(chapterIDs, chapter.ID)
	}

	completed, err := s.ProgressRepo.CountCompleted(userID, chapterIDs)
	if err != nil {
		return 0, err
	}

	return float64(completed) / float64(len(chapters)) * 100, nil
}

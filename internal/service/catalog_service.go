package service

import (
	"context"
	"course_market_backend/internal/config"
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/logger"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const catalogCacheKey = "catalog:published"

// CatalogService 面向学员的课程目录与播放页
type CatalogService struct {
	CourseRepo   CourseStore
	ChapterRepo  ChapterStore
	PurchaseRepo PurchaseStore
	ProgressRepo ProgressStore
	Progress     *ProgressService
	Redis        *redis.Client
	cacheTTL     time.Duration
}

func NewCatalogService(courseRepo CourseStore, chapterRepo ChapterStore, purchaseRepo PurchaseStore, progressRepo ProgressStore, progress *ProgressService, rdb *redis.Client, cfg *config.Config) *CatalogService {
	ttl := 5 * time.Minute
	if cfg != nil && cfg.Catalog.CacheTTLSeconds > 0 {
		ttl = time.Duration(cfg.Catalog.CacheTTLSeconds) * time.Second
	}
	return &CatalogService{
		CourseRepo:   courseRepo,
		ChapterRepo:  chapterRepo,
		PurchaseRepo: purchaseRepo,
		ProgressRepo: progressRepo,
		Progress:     progress,
		Redis:        rdb,
		cacheTTL:     ttl,
	}
}

// BrowseCourses 已发布课程目录，支持标题模糊与分类过滤。
// 登录用户的已购课程带进度；游客和未购课程 progress 为 null。
// 游客的无过滤查询走 Redis 缓存，发布状态变化时整键失效。
func (s *CatalogService) BrowseCourses(userID, title, categoryID string) ([]model.CatalogCourse, error) {
	cacheable := userID == "" && title == "" && categoryID == ""

	if cacheable {
		if cached, ok := s.cachedCatalog(); ok {
			return cached, nil
		}
	}

	courses, err := s.CourseRepo.FindPublished(title, categoryID)
	if err != nil {
		return nil, err
	}

	var purchased map[string]bool
	if userID != "" {
		purchased, err = s.PurchaseRepo.PurchasedCourseIDs(userID)
		if err != nil {
			return nil, err
		}
	}

	result := make([]model.CatalogCourse, 0, len(courses))
	for _, course := range courses {
		item := model.CatalogCourse{
			Course:        course,
			ChaptersCount: len(course.Chapters),
		}
		// 目录卡片不暴露章节明细
		item.Course.Chapters = nil

		if purchased[course.ID] {
			pct, err := s.Progress.GetCourseProgress(userID, course.ID)
			if err != nil {
				return nil, err
			}
			item.Progress = &pct
		}
		result = append(result, item)
	}

	if cacheable {
		s.storeCatalog(result)
	}
	return result, nil
}

func (s *CatalogService) cachedCatalog() ([]model.CatalogCourse, bool) {
	if s.Redis == nil {
		return nil, false
	}

	data, err := s.Redis.Get(context.Background(), catalogCacheKey).Result()
	if err != nil {
		return nil, false
	}

	var cached []model.CatalogCourse
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, false
	}
	return cached, true
}

func (s *CatalogService) storeCatalog(courses []model.CatalogCourse) {
	if s.Redis == nil {
		return
	}

	data, err := json.Marshal(courses)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), catalogCacheKey, data, s.cacheTTL).Err(); err != nil {
		logger.Log.Warn("catalog cache write failed", zap.Error(err))
	}
}

// InvalidateCache 发布/下架/删除课程后调用
func (s *CatalogService) InvalidateCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

// GetPlayerPayload 学员播放页：章节与课程必须均已发布。
// 付费章节未购买时不给视频地址与附件，其余元数据照常返回。
func (s *CatalogService) GetPlayerPayload(userID, courseID, chapterID string) (*model.PlayerPayload, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotFound
	}

	chapter, err := s.ChapterRepo.FindByIDInCourse(courseID, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	if !chapter.IsPublished {
		return nil, util.ErrChapterNotFound
	}

	purchased, err := s.PurchaseRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}

	payload := &model.PlayerPayload{
		Chapter:   *chapter,
		Course:    *course,
		Purchased: purchased,
	}

	locked := !chapter.IsFree && !purchased
	if locked {
		payload.Chapter.VideoURL = ""
		payload.Chapter.VideoAsset = nil
	} else {
		payload.VideoAsset = chapter.VideoAsset
	}

	if purchased {
		attachments, err := s.attachmentsOf(course)
		if err != nil {
			return nil, err
		}
		payload.Attachments = attachments
	}

	if next, err := s.ChapterRepo.FindNextPublished(courseID, chapter.Position); err == nil {
		payload.NextChapter = next
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if record, err := s.ProgressRepo.FindByUserAndChapter(userID, chapterID); err == nil {
		payload.IsCompleted = record.IsCompleted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pct, err := s.Progress.GetCourseProgress(userID, courseID)
	if err != nil {
		return nil, err
	}
	payload.Progress = pct

	return payload, nil
}

func (s *CatalogService) attachmentsOf(course *model.Course) ([]model.Attachment, error) {
	if course.Attachments != nil {
		return course.Attachments, nil
	}
	detailed, err := s.CourseRepo.FindByIDWithDetails(course.ID)
	if err != nil {
		return nil, err
	}
	return detailed.Attachments, nil
}

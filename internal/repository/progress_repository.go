package repository

import (
	"course_market_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert 写入用户对章节的完成状态，(user, chapter) 至多一条记录，
// 已存在则覆盖标志位，只保留当前状态不留历史
func (r *ProgressRepository) Upsert(userID, chapterID string, completed bool) (*model.UserProgress, error) {
	var progress model.UserProgress

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND chapter_id = ?", userID, chapterID).
			First(&progress).Error

		if err == gorm.ErrRecordNotFound {
			progress = model.UserProgress{
				UserID:      userID,
				ChapterID:   chapterID,
				IsCompleted: completed,
			}
			return tx.Create(&progress).Error
		} else if err != nil {
			return err
		}

		progress.IsCompleted = completed
		return tx.Save(&progress).Error
	})

	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByUserAndChapter(userID, chapterID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ? AND chapter_id = ?", userID, chapterID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// CountCompleted 统计给定章节集合中用户已完成的数量
func (r *ProgressRepository) CountCompleted(userID string, chapterIDs []string) (int64, error) {
	if len(chapterIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND chapter_id IN ? AND is_completed = ?", userID, chapterIDs, true).
		Count(&count).Error
	return count, err
}

// CompletionMap 用户对一组章节的完成状态，无记录视为未完成
func (r *ProgressRepository) CompletionMap(userID string, chapterIDs []string) (map[string]bool, error) {
	statusMap := make(map[string]bool)
	if len(chapterIDs) == 0 {
		return statusMap, nil
	}

	var records []model.UserProgress
	err := r.DB.Where("user_id = ? AND chapter_id IN ?", userID, chapterIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		statusMap[record.ChapterID] = record.IsCompleted
	}
	return statusMap, nil
}

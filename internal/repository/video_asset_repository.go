package repository

import (
	"course_market_backend/internal/model"

	"gorm.io/gorm"
)

type VideoAssetRepository struct {
	DB *gorm.DB
}

func NewVideoAssetRepository(db *gorm.DB) *VideoAssetRepository {
	return &VideoAssetRepository{DB: db}
}

// Replace 替换章节视频元数据：重新上传视频时旧记录整条作废
func (r *VideoAssetRepository) Replace(asset *model.VideoAsset) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", asset.ChapterID).
			Delete(&model.VideoAsset{}).Error; err != nil {
			return err
		}
		return tx.Create(asset).Error
	})
}

func (r *VideoAssetRepository) FindByChapter(chapterID string) (*model.VideoAsset, error) {
	var asset model.VideoAsset
	if err := r.DB.First(&asset, "chapter_id = ?", chapterID).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *VideoAssetRepository) DeleteByChapter(chapterID string) error {
	return r.DB.Where("chapter_id = ?", chapterID).Delete(&model.VideoAsset{}).Error
}

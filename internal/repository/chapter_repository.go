package repository

import (
	"course_market_backend/internal/model"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ChapterRepository) FindByID(id string) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.DB.Preload("VideoAsset").First(&chapter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// FindByIDInCourse 限定课程范围查找，防止跨课程访问章节
func (r *ChapterRepository) FindByIDInCourse(courseID, id string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.Preload("VideoAsset").
		First(&chapter, "id = ? AND course_id = ?", id, courseID).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *ChapterRepository) FindByCourse(courseID string) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) FindPublishedByCourse(courseID string) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("course_id = ? AND is_published = ?", courseID, true).
		Order("position ASC").
		Find(&chapters).Error
	return chapters, err
}

// FindNextPublished 播放页“下一章”：同课程中位置大于当前的第一个已发布章节
func (r *ChapterRepository) FindNextPublished(courseID string, position int) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.Where("course_id = ? AND is_published = ? AND position > ?", courseID, true, position).
		Order("position ASC").
		First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *ChapterRepository) MaxPosition(courseID string) (int, error) {
	var max *int
	err := r.DB.Model(&model.Chapter{}).
		Where("course_id = ?", courseID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (r *ChapterRepository) CountPublished(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Chapter{}).
		Where("course_id = ? AND is_published = ?", courseID, true).
		Count(&count).Error
	return count, err
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.DB.Save(chapter).Error
}

func (r *ChapterRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.DB.Model(&model.Chapter{}).Where("id = ?", id).Updates(fields).Error
}

// UpdatePositions 批量更新章节位置，单事务全有或全无
func (r *ChapterRepository) UpdatePositions(courseID string, updates []model.ChapterPosition) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range updates {
			result := tx.Model(&model.Chapter{}).
				Where("id = ? AND course_id = ?", item.ID, courseID).
				Update("position", item.Position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// Delete 级联清理进度记录和视频元数据
func (r *ChapterRepository) Delete(id string) error {
	return r.DB.Select("Progress", "VideoAsset").
		Delete(&model.Chapter{UUIDBase: model.UUIDBase{ID: id}}).Error
}

package model

// UserProgress 用户对单个章节的完成记录，(user_id, chapter_id) 全局至多一条
// swagger:model UserProgress
type UserProgress struct {
	UUIDBase
	UserID      string `gorm:"size:36;not null;uniqueIndex:idx_user_chapter" json:"userId"`
	ChapterID   string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_chapter" json:"chapterId"`
	IsCompleted bool   `gorm:"default:false" json:"isCompleted"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

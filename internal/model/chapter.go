package model

// swagger:model Chapter
type Chapter struct {
	UUIDBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	VideoURL    string `gorm:"size:512" json:"videoUrl"`
	// 课程内展示顺序，唯一性由服务层在重排时校验（批量交换位置时数据库唯一索引会误伤）
	Position    int  `gorm:"not null;index" json:"position"`
	IsPublished bool `gorm:"default:false;index" json:"isPublished"`
	IsFree      bool `gorm:"default:false" json:"isFree"`

	CourseID string `gorm:"type:varchar(36);not null;index" json:"courseId"`

	VideoAsset *VideoAsset    `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"videoAsset,omitempty"`
	Progress   []UserProgress `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Chapter) TableName() string {
	return "chapters"
}

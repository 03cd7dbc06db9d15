package model

// swagger:model Attachment
type Attachment struct {
	UUIDBase
	Name string `gorm:"size:255;not null" json:"name"`
	URL  string `gorm:"size:512;not null" json:"url"`

	CourseID string `gorm:"type:varchar(36);not null;index" json:"courseId"`
}

func (Attachment) TableName() string {
	return "attachments"
}

package model

// swagger:model Course
type Course struct {
	UUIDBase
	// 授课教师ID，由外部身份服务签发，本系统不建用户表
	UserID      string  `gorm:"size:36;not null;index" json:"userId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	ImageURL    string  `gorm:"size:512" json:"imageUrl"`
	Price       float64 `gorm:"default:0" json:"price"`
	IsPublished bool    `gorm:"default:false;index" json:"isPublished"`

	CategoryID *string   `gorm:"type:varchar(36);index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Chapters    []Chapter    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
	Purchases   []Purchase   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

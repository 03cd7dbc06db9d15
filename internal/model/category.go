package model

// swagger:model Category
type Category struct {
	UUIDBase
	Name string `gorm:"size:100;unique;not null" json:"name"`

	Courses []Course `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

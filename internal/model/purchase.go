package model

// Purchase 购买记录，(user_id, course_id) 至多一条，购买后解锁付费章节
// swagger:model Purchase
type Purchase struct {
	UUIDBase
	UserID   string `gorm:"size:36;not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course" json:"courseId"`
	// 成交价快照，课程后续调价不影响已有记录
	Price float64 `gorm:"default:0" json:"price"`
}

func (Purchase) TableName() string {
	return "purchases"
}

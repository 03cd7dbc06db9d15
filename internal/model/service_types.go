package model

// CatalogCourse 目录页课程卡片：课程基本信息 + 章节数 + 当前用户进度
type CatalogCourse struct {
	Course
	ChaptersCount int `json:"chaptersCount"`
	// 未购买时为 null，购买后为 [0,100] 的完成百分比
	Progress *float64 `json:"progress"`
}

// PlayerPayload 学员播放页载荷
type PlayerPayload struct {
	Chapter     Chapter      `json:"chapter"`
	Course      Course       `json:"course"`
	VideoAsset  *VideoAsset  `json:"videoAsset,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	NextChapter *Chapter     `json:"nextChapter,omitempty"`
	Purchased   bool         `json:"purchased"`
	IsCompleted bool         `json:"isCompleted"`
	// 课程整体完成百分比
	Progress float64 `json:"progress"`
}

// CourseSales 单课程销售统计
type CourseSales struct {
	CourseID string  `json:"courseId"`
	Title    string  `json:"title"`
	Sales    int64   `json:"sales"`
	Revenue  float64 `json:"revenue"`
}

// DashboardOverview 教师端看板汇总
type DashboardOverview struct {
	TotalRevenue float64       `json:"totalRevenue"`
	TotalSales   int64         `json:"totalSales"`
	Courses      []CourseSales `json:"courses"`
}

// ChapterPosition 重排请求中的单条 (章节, 新位置) 对
type ChapterPosition struct {
	ID       string `json:"id" binding:"required"`
	Position int    `json:"position"`
}

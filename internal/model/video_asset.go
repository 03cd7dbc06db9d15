package model

// VideoAsset 章节视频在外部视频托管平台上的元数据，一个章节至多一条
// swagger:model VideoAsset
type VideoAsset struct {
	UUIDBase
	ChapterID  string `gorm:"type:varchar(36);not null;uniqueIndex" json:"chapterId"`
	AssetID    string `gorm:"size:255" json:"assetId"`
	PlaybackID string `gorm:"size:255" json:"playbackId"`

	// ffprobe 探测结果
	Duration float64 `gorm:"default:0" json:"duration"`
	Width    int     `gorm:"default:0" json:"width"`
	Height   int     `gorm:"default:0" json:"height"`
}

func (VideoAsset) TableName() string {
	return "video_assets"
}

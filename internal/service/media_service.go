package service

import (
	"context"
	"course_market_backend/internal/config"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/logger"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MediaService 处理课程封面、附件与章节视频的上传落盘
type MediaService struct {
	Storage *StorageService
	Cfg     *config.Config
}

func NewMediaService(storage *StorageService, cfg *config.Config) *MediaService {
	return &MediaService{Storage: storage, Cfg: cfg}
}

// VideoUploadResult 章节视频上传结果
type VideoUploadResult struct {
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Info         *util.VideoInfo `json:"info,omitempty"`
}

func timestampedName(prefix, original string) string {
	return prefix + "/" + time.Now().Format("20060102150405") + "-" +
		strings.ReplaceAll(original, " ", "-")
}

// UploadCourseImage 校验并上传课程封面
func (s *MediaService) UploadCourseImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	filename := timestampedName("covers", file.Filename)
	return s.Storage.Upload(ctx, filename, src, file.Size, mimeType)
}

// UploadAttachment 校验并上传课程附件，返回展示名与访问地址
func (s *MediaService) UploadAttachment(ctx context.Context, file *multipart.FileHeader) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, util.AllowedAttachmentTypes)
	if err != nil {
		return "", "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", "", err
	}

	filename := timestampedName("attachments", file.Filename)
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, mimeType)
	if err != nil {
		return "", "", err
	}
	return file.Filename, url, nil
}

// UploadChapterVideo 视频先落临时盘以便 ffprobe 探测与抽帧，再上传存储
func (s *MediaService) UploadChapterVideo(ctx context.Context, file *multipart.FileHeader) (*VideoUploadResult, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("unsupported video extension: %s", ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}

	videoPath := filepath.Join(tempDir, time.Now().Format("20060102150405")+ext)
	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()
	defer os.Remove(videoPath) // 处理完成后清理

	videoFilename := timestampedName("videos", file.Filename)
	videoURL, err := s.Storage.UploadFile(ctx, videoFilename, videoPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	result := &VideoUploadResult{URL: videoURL}

	// 探测失败不阻断上传，时长等元数据记 0
	if info, err := util.GetVideoInfo(videoPath); err == nil {
		result.Info = info
	} else {
		logger.Log.Warn("视频元数据探测失败", zap.Error(err))
	}

	thumbnailFilename := strings.TrimSuffix(videoFilename, ext) + ".jpg"
	thumbnailFilename = "thumbnails/" + filepath.Base(thumbnailFilename)
	thumbnailPath := filepath.Join(tempDir, filepath.Base(thumbnailFilename))
	defer os.Remove(thumbnailPath)

	if err := util.GenerateThumbnail(videoPath, thumbnailPath, "3"); err != nil {
		logger.Log.Warn("生成缩略图失败", zap.Error(err))
	} else {
		if url, err := s.Storage.UploadFile(ctx, thumbnailFilename, thumbnailPath, "image/jpeg"); err == nil {
			result.ThumbnailURL = url
		}
	}

	return result, nil
}

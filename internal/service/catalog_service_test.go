package service

import (
	"testing"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	svc       *CatalogService
	courses   *fakeCourseStore
	chapters  *fakeChapterStore
	purchases *fakePurchaseStore
	progress  *fakeProgressStore
}

func newCatalogFixture() *catalogFixture {
	courses := newFakeCourseStore()
	chapters := newFakeChapterStore()
	purchases := newFakePurchaseStore()
	progress := newFakeProgressStore()
	progressSvc := NewProgressService(progress, chapters, courses, purchases)
	svc := NewCatalogService(courses, chapters, purchases, progress, progressSvc, nil, nil)
	return &catalogFixture{
		svc:       svc,
		courses:   courses,
		chapters:  chapters,
		purchases: purchases,
		progress:  progress,
	}
}

func (f *catalogFixture) publishedCourse(title string, price float64) *model.Course {
	return f.courses.add(&model.Course{Title: title, Price: price, IsPublished: true})
}

func TestBrowseCourses_OnlyPublished(t *testing.T) {
	f := newCatalogFixture()
	f.publishedCourse("Go 入门", 0)
	f.courses.add(&model.Course{Title: "草稿课", IsPublished: false})

	result, err := f.svc.BrowseCourses("", "", "")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Go 入门", result[0].Title)
	// 游客看不到进度
	assert.Nil(t, result[0].Progress)
}

func TestBrowseCourses_ProgressOnPurchasedOnly(t *testing.T) {
	f := newCatalogFixture()
	bought := f.publishedCourse("Go 入门", 19.99)
	f.publishedCourse("未购课程", 9.99)

	chapter := f.chapters.add(&model.Chapter{CourseID: bought.ID, IsPublished: true, IsFree: true})
	f.purchases.add("user-1", bought.ID, 19.99)
	_, err := f.progress.Upsert("user-1", chapter.ID, true)
	require.NoError(t, err)

	result, err := f.svc.BrowseCourses("user-1", "", "")
	require.NoError(t, err)
	require.Len(t, result, 2)

	for _, item := range result {
		if item.ID == bought.ID {
			require.NotNil(t, item.Progress)
			assert.InDelta(t, 100.0, *item.Progress, 1e-9)
			assert.Equal(t, 1, item.ChaptersCount)
		} else {
			assert.Nil(t, item.Progress)
		}
		// 目录卡片不带章节明细
		assert.Nil(t, item.Chapters)
	}
}

func TestGetPlayerPayload_LockedChapterWithholdsVideo(t *testing.T) {
	f := newCatalogFixture()
	course := f.publishedCourse("进阶课", 19.99)
	chapter := f.chapters.add(&model.Chapter{
		CourseID:    course.ID,
		Title:       "付费章节",
		VideoURL:    "https://cdn.example.com/v/1.mp4",
		IsPublished: true,
	})

	payload, err := f.svc.GetPlayerPayload("user-1", course.ID, chapter.ID)
	require.NoError(t, err)
	assert.False(t, payload.Purchased)
	// 元数据照常返回，视频与附件扣下
	assert.Equal(t, "付费章节", payload.Chapter.Title)
	assert.Empty(t, payload.Chapter.VideoURL)
	assert.Nil(t, payload.VideoAsset)
	assert.Empty(t, payload.Attachments)
}

func TestGetPlayerPayload_FreeChapterPlayableWithoutPurchase(t *testing.T) {
	f := newCatalogFixture()
	course := f.publishedCourse("进阶课", 19.99)
	chapter := f.chapters.add(&model.Chapter{
		CourseID:    course.ID,
		Title:       "试听章节",
		VideoURL:    "https://cdn.example.com/v/free.mp4",
		IsFree:      true,
		IsPublished: true,
	})

	payload, err := f.svc.GetPlayerPayload("user-1", course.ID, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/v/free.mp4", payload.Chapter.VideoURL)
}

func TestGetPlayerPayload_PurchasedGetsAttachmentsAndNext(t *testing.T) {
	f := newCatalogFixture()
	course := f.publishedCourse("进阶课", 19.99)
	course.Attachments = []model.Attachment{{Name: "讲义.pdf", URL: "https://cdn.example.com/a.pdf", CourseID: course.ID}}

	first := f.chapters.add(&model.Chapter{
		CourseID:    course.ID,
		Position:    0,
		VideoURL:    "https://cdn.example.com/v/1.mp4",
		IsPublished: true,
	})
	second := f.chapters.add(&model.Chapter{
		CourseID:    course.ID,
		Position:    1,
		VideoURL:    "https://cdn.example.com/v/2.mp4",
		IsPublished: true,
	})
	f.purchases.add("user-1", course.ID, 19.99)
	_, err := f.progress.Upsert("user-1", first.ID, true)
	require.NoError(t, err)

	payload, err := f.svc.GetPlayerPayload("user-1", course.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, payload.Purchased)
	assert.True(t, payload.IsCompleted)
	require.Len(t, payload.Attachments, 1)
	require.NotNil(t, payload.NextChapter)
	assert.Equal(t, second.ID, payload.NextChapter.ID)
	assert.InDelta(t, 50.0, payload.Progress, 1e-9)
}

func TestGetPlayerPayload_UnpublishedHidden(t *testing.T) {
	f := newCatalogFixture()
	draftCourse := f.courses.add(&model.Course{Title: "草稿课", IsPublished: false})
	published := f.publishedCourse("进阶课", 0)
	draftChapter := f.chapters.add(&model.Chapter{CourseID: published.ID, IsPublished: false})

	_, err := f.svc.GetPlayerPayload("user-1", draftCourse.ID, "whatever")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = f.svc.GetPlayerPayload("user-1", published.ID, draftChapter.ID)
	assert.ErrorIs(t, err, util.ErrChapterNotFound)
}

package service

import (
	"errors"
	"testing"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teacherID = "teacher-1"

func newChapterFixture() (*ChapterService, *fakeCourseStore, *fakeChapterStore, *fakeVideoAssetStore) {
	courses := newFakeCourseStore()
	chapters := newFakeChapterStore()
	videos := newFakeVideoAssetStore()
	svc := NewChapterService(chapters, courses, videos, nil)
	return svc, courses, chapters, videos
}

func positionsOf(t *testing.T, chapters *fakeChapterStore, courseID string) map[string]int {
	t.Helper()
	list, err := chapters.FindByCourse(courseID)
	require.NoError(t, err)
	result := make(map[string]int, len(list))
	for _, chapter := range list {
		result[chapter.ID] = chapter.Position
	}
	return result
}

func TestCreateChapter_AppendsToEnd(t *testing.T) {
	svc, courses, _, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门"})

	first, err := svc.CreateChapter(teacherID, course.ID, "第一课")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := svc.CreateChapter(teacherID, course.ID, "第二课")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
}

func TestCreateChapter_ForeignCourse(t *testing.T) {
	svc, courses, _, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: "someone-else", Title: "别人的课"})

	_, err := svc.CreateChapter(teacherID, course.ID, "蹭课")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.CreateChapter(teacherID, "missing", "虚空")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestReorderChapters_Swap(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门"})
	a := chapters.add(&model.Chapter{CourseID: course.ID, Position: 0})
	b := chapters.add(&model.Chapter{CourseID: course.ID, Position: 1})
	c := chapters.add(&model.Chapter{CourseID: course.ID, Position: 2})

	err := svc.ReorderChapters(teacherID, course.ID, []model.ChapterPosition{
		{ID: a.ID, Position: 2},
		{ID: c.ID, Position: 0},
	})
	require.NoError(t, err)

	got := positionsOf(t, chapters, course.ID)
	assert.Equal(t, 2, got[a.ID])
	assert.Equal(t, 1, got[b.ID])
	assert.Equal(t, 0, got[c.ID])
}

func TestReorderChapters_DuplicatePositionRejectedBeforeWrite(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门"})
	a := chapters.add(&model.Chapter{CourseID: course.ID, Position: 0})
	b := chapters.add(&model.Chapter{CourseID: course.ID, Position: 1})

	// a 移到 1 而 b 原地不动，最终位置撞车
	err := svc.ReorderChapters(teacherID, course.ID, []model.ChapterPosition{
		{ID: a.ID, Position: 1},
	})
	assert.ErrorIs(t, err, util.ErrPositionConflict)
	assert.Zero(t, chapters.updatePositionsCalls)

	got := positionsOf(t, chapters, course.ID)
	assert.Equal(t, 0, got[a.ID])
	assert.Equal(t, 1, got[b.ID])
}

func TestReorderChapters_ForeignChapterRejectedBeforeWrite(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门"})
	other := courses.add(&model.Course{UserID: teacherID, Title: "另一门课"})
	a := chapters.add(&model.Chapter{CourseID: course.ID, Position: 0})
	foreign := chapters.add(&model.Chapter{CourseID: other.ID, Position: 0})

	err := svc.ReorderChapters(teacherID, course.ID, []model.ChapterPosition{
		{ID: a.ID, Position: 1},
		{ID: foreign.ID, Position: 0},
	})
	assert.ErrorIs(t, err, util.ErrChapterNotFound)
	assert.Zero(t, chapters.updatePositionsCalls)
	assert.Equal(t, 0, positionsOf(t, chapters, course.ID)[a.ID])
}

func TestReorderChapters_StoreFailureLeavesPositionsUntouched(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门"})
	a := chapters.add(&model.Chapter{CourseID: course.ID, Position: 0})
	b := chapters.add(&model.Chapter{CourseID: course.ID, Position: 1})

	chapters.updatePositionsErr = errors.New("deadlock")

	err := svc.ReorderChapters(teacherID, course.ID, []model.ChapterPosition{
		{ID: a.ID, Position: 1},
		{ID: b.ID, Position: 0},
	})
	assert.Error(t, err)

	got := positionsOf(t, chapters, course.ID)
	assert.Equal(t, 0, got[a.ID])
	assert.Equal(t, 1, got[b.ID])
}

func TestReorderChapters_EmptyBatchIsNoop(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门"})

	require.NoError(t, svc.ReorderChapters(teacherID, course.ID, nil))
	assert.Zero(t, chapters.updatePositionsCalls)
}

func TestPublishChapter_RequiresVideo(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门"})
	chapter := chapters.add(&model.Chapter{CourseID: course.ID, Title: "第一课", Description: "介绍"})

	err := svc.PublishChapter(teacherID, course.ID, chapter.ID)
	assert.ErrorIs(t, err, util.ErrChapterIncomplete)

	chapter.VideoURL = "https://cdn.example.com/v/1.mp4"
	require.NoError(t, svc.PublishChapter(teacherID, course.ID, chapter.ID))
	assert.True(t, chapters.chapters[chapter.ID].IsPublished)
}

func TestUnpublishChapter_LastOneUnpublishesCourse(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门", IsPublished: true})
	only := chapters.add(&model.Chapter{CourseID: course.ID, Title: "唯一章节", IsPublished: true})

	require.NoError(t, svc.UnpublishChapter(teacherID, course.ID, only.ID))
	assert.False(t, chapters.chapters[only.ID].IsPublished)
	assert.False(t, courses.courses[course.ID].IsPublished)
}

func TestUnpublishChapter_OthersKeepCoursePublished(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门", IsPublished: true})
	first := chapters.add(&model.Chapter{CourseID: course.ID, Position: 0, IsPublished: true})
	chapters.add(&model.Chapter{CourseID: course.ID, Position: 1, IsPublished: true})

	require.NoError(t, svc.UnpublishChapter(teacherID, course.ID, first.ID))
	assert.True(t, courses.courses[course.ID].IsPublished)
}

func TestDeleteChapter_LastPublishedUnpublishesCourse(t *testing.T) {
	svc, courses, chapters, _ := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门", IsPublished: true})
	only := chapters.add(&model.Chapter{CourseID: course.ID, IsPublished: true})

	require.NoError(t, svc.DeleteChapter(teacherID, course.ID, only.ID))
	assert.NotContains(t, chapters.chapters, only.ID)
	assert.False(t, courses.courses[course.ID].IsPublished)
}

func TestSetVideo_ReplacesAssetAndStoresProbeInfo(t *testing.T) {
	svc, courses, chapters, videos := newChapterFixture()
	course := courses.add(&model.Course{UserID: teacherID, Title: "Go 入门"})
	chapter := chapters.add(&model.Chapter{CourseID: course.ID, Title: "第一课"})

	info := &util.VideoInfo{Duration: 321.5, Width: 1920, Height: 1080}
	asset, err := svc.SetVideo(teacherID, course.ID, chapter.ID, "https://cdn.example.com/v/1.mp4", info)
	require.NoError(t, err)
	assert.Equal(t, 321.5, asset.Duration)
	assert.Equal(t, "https://cdn.example.com/v/1.mp4", chapters.chapters[chapter.ID].VideoURL)

	// 重传整条替换而不是叠加
	replacement, err := svc.SetVideo(teacherID, course.ID, chapter.ID, "https://cdn.example.com/v/2.mp4", nil)
	require.NoError(t, err)
	assert.NotEqual(t, asset.AssetID, replacement.AssetID)
	stored, err := videos.FindByChapter(chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, replacement.AssetID, stored.AssetID)
}

package service

import (
	"fmt"
	"sort"

	"course_market_backend/internal/model"

	"gorm.io/gorm"
)

// 内存桩，满足 stores.go 的各个接口，行为对齐 repository 包的 gorm 实现：
// 未命中返回 gorm.ErrRecordNotFound，UpdatePositions 整批生效或整批不生效。

type fakeCourseStore struct {
	courses map[string]*model.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[string]*model.Course)}
}

func (f *fakeCourseStore) add(course *model.Course) *model.Course {
	if course.ID == "" {
		course.ID = model.GenerateUUID()
	}
	f.courses[course.ID] = course
	return course
}

func (f *fakeCourseStore) Create(course *model.Course) error {
	f.add(course)
	return nil
}

func (f *fakeCourseStore) FindByID(id string) (*model.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (f *fakeCourseStore) FindByIDWithDetails(id string) (*model.Course, error) {
	return f.FindByID(id)
}

func (f *fakeCourseStore) FindByTeacher(userID string) ([]model.Course, error) {
	var result []model.Course
	for _, course := range f.courses {
		if course.UserID == userID {
			result = append(result, *course)
		}
	}
	return result, nil
}

func (f *fakeCourseStore) FindPublished(title, categoryID string) ([]model.Course, error) {
	var result []model.Course
	for _, course := range f.courses {
		if !course.IsPublished {
			continue
		}
		if categoryID != "" && (course.CategoryID == nil || *course.CategoryID != categoryID) {
			continue
		}
		result = append(result, *course)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeCourseStore) Update(course *model.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) UpdateFields(id string, fields map[string]interface{}) error {
	course, ok := f.courses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["is_published"]; ok {
		course.IsPublished = v.(bool)
	}
	return nil
}

func (f *fakeCourseStore) Delete(id string) error {
	delete(f.courses, id)
	return nil
}

type fakeChapterStore struct {
	chapters map[string]*model.Chapter
	// UpdatePositions 的调用计数与注入错误，用于断言校验失败时没有写库
	updatePositionsCalls int
	updatePositionsErr   error
}

func newFakeChapterStore() *fakeChapterStore {
	return &fakeChapterStore{chapters: make(map[string]*model.Chapter)}
}

func (f *fakeChapterStore) add(chapter *model.Chapter) *model.Chapter {
	if chapter.ID == "" {
		chapter.ID = model.GenerateUUID()
	}
	f.chapters[chapter.ID] = chapter
	return chapter
}

func (f *fakeChapterStore) Create(chapter *model.Chapter) error {
	f.add(chapter)
	return nil
}

func (f *fakeChapterStore) FindByID(id string) (*model.Chapter, error) {
	chapter, ok := f.chapters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return chapter, nil
}

func (f *fakeChapterStore) FindByIDInCourse(courseID, id string) (*model.Chapter, error) {
	chapter, ok := f.chapters[id]
	if !ok || chapter.CourseID != courseID {
		return nil, gorm.ErrRecordNotFound
	}
	return chapter, nil
}

func (f *fakeChapterStore) byCourse(courseID string, publishedOnly bool) []model.Chapter {
	var result []model.Chapter
	for _, chapter := range f.chapters {
		if chapter.CourseID != courseID {
			continue
		}
		if publishedOnly && !chapter.IsPublished {
			continue
		}
		result = append(result, *chapter)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result
}

func (f *fakeChapterStore) FindByCourse(courseID string) ([]model.Chapter, error) {
	return f.byCourse(courseID, false), nil
}

func (f *fakeChapterStore) FindPublishedByCourse(courseID string) ([]model.Chapter, error) {
	return f.byCourse(courseID, true), nil
}

func (f *fakeChapterStore) FindNextPublished(courseID string, position int) (*model.Chapter, error) {
	for _, chapter := range f.byCourse(courseID, true) {
		if chapter.Position > position {
			next := chapter
			return &next, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChapterStore) MaxPosition(courseID string) (int, error) {
	max := -1
	for _, chapter := range f.chapters {
		if chapter.CourseID == courseID && chapter.Position > max {
			max = chapter.Position
		}
	}
	return max, nil
}

func (f *fakeChapterStore) CountPublished(courseID string) (int64, error) {
	return int64(len(f.byCourse(courseID, true))), nil
}

func (f *fakeChapterStore) Update(chapter *model.Chapter) error {
	if _, ok := f.chapters[chapter.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.chapters[chapter.ID] = chapter
	return nil
}

func (f *fakeChapterStore) UpdateFields(id string, fields map[string]interface{}) error {
	chapter, ok := f.chapters[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["is_published"]; ok {
		chapter.IsPublished = v.(bool)
	}
	return nil
}

func (f *fakeChapterStore) UpdatePositions(courseID string, updates []model.ChapterPosition) error {
	f.updatePositionsCalls++
	if f.updatePositionsErr != nil {
		return f.updatePositionsErr
	}
	for _, item := range updates {
		chapter, ok := f.chapters[item.ID]
		if !ok || chapter.CourseID != courseID {
			return gorm.ErrRecordNotFound
		}
	}
	for _, item := range updates {
		f.chapters[item.ID].Position = item.Position
	}
	return nil
}

func (f *fakeChapterStore) Delete(id string) error {
	delete(f.chapters, id)
	return nil
}

type fakeProgressStore struct {
	records map[string]*model.UserProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[string]*model.UserProgress)}
}

func progressKey(userID, chapterID string) string {
	return fmt.Sprintf("%s|%s", userID, chapterID)
}

func (f *fakeProgressStore) Upsert(userID, chapterID string, completed bool) (*model.UserProgress, error) {
	key := progressKey(userID, chapterID)
	if record, ok := f.records[key]; ok {
		record.IsCompleted = completed
		return record, nil
	}
	record := &model.UserProgress{
		UserID:      userID,
		ChapterID:   chapterID,
		IsCompleted: completed,
	}
	record.ID = model.GenerateUUID()
	f.records[key] = record
	return record, nil
}

func (f *fakeProgressStore) FindByUserAndChapter(userID, chapterID string) (*model.UserProgress, error) {
	record, ok := f.records[progressKey(userID, chapterID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeProgressStore) CountCompleted(userID string, chapterIDs []string) (int64, error) {
	var count int64
	for _, chapterID := range chapterIDs {
		if record, ok := f.records[progressKey(userID, chapterID)]; ok && record.IsCompleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeProgressStore) CompletionMap(userID string, chapterIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	for _, chapterID := range chapterIDs {
		if record, ok := f.records[progressKey(userID, chapterID)]; ok && record.IsCompleted {
			result[chapterID] = true
		}
	}
	return result, nil
}

type fakePurchaseStore struct {
	purchases map[string]*model.Purchase
}

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{purchases: make(map[string]*model.Purchase)}
}

func purchaseKey(userID, courseID string) string {
	return fmt.Sprintf("%s|%s", userID, courseID)
}

func (f *fakePurchaseStore) add(userID, courseID string, price float64) {
	purchase := &model.Purchase{UserID: userID, CourseID: courseID, Price: price}
	purchase.ID = model.GenerateUUID()
	f.purchases[purchaseKey(userID, courseID)] = purchase
}

func (f *fakePurchaseStore) Create(purchase *model.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = model.GenerateUUID()
	}
	f.purchases[purchaseKey(purchase.UserID, purchase.CourseID)] = purchase
	return nil
}

func (f *fakePurchaseStore) FindByUserAndCourse(userID, courseID string) (*model.Purchase, error) {
	purchase, ok := f.purchases[purchaseKey(userID, courseID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return purchase, nil
}

func (f *fakePurchaseStore) Exists(userID, courseID string) (bool, error) {
	_, ok := f.purchases[purchaseKey(userID, courseID)]
	return ok, nil
}

func (f *fakePurchaseStore) PurchasedCourseIDs(userID string) (map[string]bool, error) {
	result := make(map[string]bool)
	for _, purchase := range f.purchases {
		if purchase.UserID == userID {
			result[purchase.CourseID] = true
		}
	}
	return result, nil
}

func (f *fakePurchaseStore) SalesByTeacher(teacherID string) ([]model.CourseSales, error) {
	return nil, nil
}

type fakeAttachmentStore struct {
	attachments map[string]*model.Attachment
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{attachments: make(map[string]*model.Attachment)}
}

func (f *fakeAttachmentStore) Create(attachment *model.Attachment) error {
	if attachment.ID == "" {
		attachment.ID = model.GenerateUUID()
	}
	f.attachments[attachment.ID] = attachment
	return nil
}

func (f *fakeAttachmentStore) FindByID(id string) (*model.Attachment, error) {
	attachment, ok := f.attachments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return attachment, nil
}

func (f *fakeAttachmentStore) FindByCourse(courseID string) ([]model.Attachment, error) {
	var result []model.Attachment
	for _, attachment := range f.attachments {
		if attachment.CourseID == courseID {
			result = append(result, *attachment)
		}
	}
	return result, nil
}

func (f *fakeAttachmentStore) Delete(id string) error {
	delete(f.attachments, id)
	return nil
}

type fakeVideoAssetStore struct {
	assets map[string]*model.VideoAsset // chapterID -> asset
}

func newFakeVideoAssetStore() *fakeVideoAssetStore {
	return &fakeVideoAssetStore{assets: make(map[string]*model.VideoAsset)}
}

func (f *fakeVideoAssetStore) Replace(asset *model.VideoAsset) error {
	if asset.ID == "" {
		asset.ID = model.GenerateUUID()
	}
	f.assets[asset.ChapterID] = asset
	return nil
}

func (f *fakeVideoAssetStore) FindByChapter(chapterID string) (*model.VideoAsset, error) {
	asset, ok := f.assets[chapterID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return asset, nil
}

func (f *fakeVideoAssetStore) DeleteByChapter(chapterID string) error {
	delete(f.assets, chapterID)
	return nil
}

type fakeCategoryStore struct {
	categories map[string]*model.Category
	courseRefs map[string]int64
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{
		categories: make(map[string]*model.Category),
		courseRefs: make(map[string]int64),
	}
}

func (f *fakeCategoryStore) add(name string) *model.Category {
	category := &model.Category{Name: name}
	category.ID = model.GenerateUUID()
	f.categories[category.ID] = category
	return category
}

func (f *fakeCategoryStore) Create(category *model.Category) error {
	if category.ID == "" {
		category.ID = model.GenerateUUID()
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryStore) FindAll() ([]model.Category, error) {
	var result []model.Category
	for _, category := range f.categories {
		result = append(result, *category)
	}
	return result, nil
}

func (f *fakeCategoryStore) FindByID(id string) (*model.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (f *fakeCategoryStore) Update(category *model.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryStore) Delete(id string) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryStore) CountCourses(categoryID string) (int64, error) {
	return f.courseRefs[categoryID], nil
}

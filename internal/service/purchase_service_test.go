package service

import (
	"context"
	"errors"
	"testing"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentProvider struct {
	requests []CheckoutRequest
	session  *CheckoutSession
	err      error
}

func (f *fakePaymentProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func newPurchaseFixture() (*PurchaseService, *fakeCourseStore, *fakePurchaseStore, *fakePaymentProvider) {
	courses := newFakeCourseStore()
	purchases := newFakePurchaseStore()
	payment := &fakePaymentProvider{
		session: &CheckoutSession{SessionID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"},
	}
	svc := NewPurchaseService(purchases, courses, payment, "usd")
	return svc, courses, purchases, payment
}

func TestCreateCheckout_FreeCourseSkipsPayment(t *testing.T) {
	svc, courses, purchases, payment := newPurchaseFixture()
	course := courses.add(&model.Course{Title: "公开课", Price: 0, IsPublished: true})

	session, err := svc.CreateCheckout(context.Background(), "user-1", course.ID)
	require.NoError(t, err)
	assert.True(t, session.Free)
	assert.Empty(t, payment.requests)

	exists, err := purchases.Exists("user-1", course.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateCheckout_PaidCourseAmountInCents(t *testing.T) {
	svc, courses, purchases, payment := newPurchaseFixture()
	course := courses.add(&model.Course{Title: "进阶课", Price: 19.99, IsPublished: true})

	session, err := svc.CreateCheckout(context.Background(), "user-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.SessionID)

	require.Len(t, payment.requests, 1)
	req := payment.requests[0]
	assert.Equal(t, int64(1999), req.Amount)
	assert.Equal(t, "usd", req.Currency)
	assert.Equal(t, course.ID, req.CourseID)

	// 支付完成前不产生购买记录
	exists, err := purchases.Exists("user-1", course.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateCheckout_AlreadyPurchased(t *testing.T) {
	svc, courses, purchases, payment := newPurchaseFixture()
	course := courses.add(&model.Course{Title: "进阶课", Price: 19.99, IsPublished: true})
	purchases.add("user-1", course.ID, 19.99)

	_, err := svc.CreateCheckout(context.Background(), "user-1", course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyPurchased)
	assert.Empty(t, payment.requests)
}

func TestCreateCheckout_UnpublishedCourseHidden(t *testing.T) {
	svc, courses, _, _ := newPurchaseFixture()
	course := courses.add(&model.Course{Title: "草稿课", Price: 9.99, IsPublished: false})

	_, err := svc.CreateCheckout(context.Background(), "user-1", course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCreateCheckout_PaymentFailurePropagates(t *testing.T) {
	svc, courses, purchases, payment := newPurchaseFixture()
	course := courses.add(&model.Course{Title: "进阶课", Price: 9.99, IsPublished: true})
	payment.err = errors.New("gateway timeout")

	_, err := svc.CreateCheckout(context.Background(), "user-1", course.ID)
	assert.Error(t, err)

	exists, err := purchases.Exists("user-1", course.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRecordPurchase_IdempotentWithPriceSnapshot(t *testing.T) {
	svc, courses, purchases, _ := newPurchaseFixture()
	course := courses.add(&model.Course{Title: "进阶课", Price: 19.99, IsPublished: true})

	first, err := svc.RecordPurchase("user-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, 19.99, first.Price)

	// 调价不影响已有记录，重复确认返回原记录
	course.Price = 29.99
	second, err := svc.RecordPurchase("user-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 19.99, second.Price)
	assert.Len(t, purchases.purchases, 1)
}

func TestRecordPurchase_CourseNotFound(t *testing.T) {
	svc, _, _, _ := newPurchaseFixture()

	_, err := svc.RecordPurchase("user-1", "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

package service

import (
	"context"
	"course_market_backend/internal/config"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// CheckoutSession 外部支付平台返回的结账会话
type CheckoutSession struct {
	SessionID string `json:"sessionId,omitempty"`
	URL       string `json:"url,omitempty"`
	// 免费课程直接入库，无需跳转支付页
	Free bool `json:"free"`
}

type CheckoutRequest struct {
	UserID      string
	CourseID    string
	CourseTitle string
	// 最小货币单位金额（分）
	Amount   int64
	Currency string
}

// PaymentProvider 支付平台边界，测试时用桩替换
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

// PaymentClient Stripe 风格结账 API 的 HTTP 客户端。
// 支付结果回调由独立的确认通道处理，本服务不消费 webhook。
type PaymentClient struct {
	cfg    config.PaymentConfig
	client *resty.Client
}

func NewPaymentClient(cfg *config.Config) *PaymentClient {
	client := resty.New().
		SetBaseURL(cfg.Payment.BaseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(cfg.Payment.APIKey)

	return &PaymentClient{cfg: cfg.Payment, client: client}
}

func (p *PaymentClient) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"mode":        "payment",
			"success_url": p.cfg.SuccessURL,
			"cancel_url":  p.cfg.CancelURL,
			"line_items[0][price_data][currency]":           req.Currency,
			"line_items[0][price_data][unit_amount]":        strconv.FormatInt(req.Amount, 10),
			"line_items[0][price_data][product_data][name]": req.CourseTitle,
			"line_items[0][quantity]":                       "1",
			"metadata[user_id]":   req.UserID,
			"metadata[course_id]": req.CourseID,
		}).
		Post("/v1/checkout/sessions")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode(), resp.String())
	}

	var session struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, fmt.Errorf("invalid checkout session response: %v", err)
	}

	return &CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

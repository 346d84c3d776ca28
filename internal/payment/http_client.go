package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"go.uber.org/zap"
)

// HTTPClient клиент платёжного сервиса по REST
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPClient создаёт клиента платёжного сервиса
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type payCartRequest struct {
	WalletID        string `json:"wallet_id"`
	MentorID        int64  `json:"mentor_id"`
	MentorName      string `json:"mentor_name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration"`
	Topic           string `json:"topic"`
	Goals           string `json:"goals"`
	Amount          string `json:"amount"`
}

// payCartResponse ответ сервиса на оплату; без поля success ответ не считается решением по платежу
type payCartResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

// Pay отправляет оплату из корзины
func (c *HTTPClient) Pay(ctx context.Context, req PayRequest) (model.PaymentResult, error) {
	payload, err := json.Marshal(payCartRequest{
		WalletID:        req.WalletID,
		MentorID:        req.Draft.MentorID,
		MentorName:      req.MentorName,
		Date:            req.Draft.Date.Format(model.SessionDateLayout),
		Time:            req.Draft.TimeSlot,
		DurationMinutes: req.Draft.DurationMinutes,
		Topic:           req.Draft.Topic,
		Goals:           req.Draft.Goals,
		Amount:          req.Draft.Amount.StringFixed(2),
	})
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("encode pay request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart/pay", bytes.NewReader(payload))
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("build pay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("pay from cart: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("read pay response: %w: %v", ErrUnavailable, err)
	}

	if !isPayVerdictStatus(resp.StatusCode) {
		return model.PaymentResult{}, fmt.Errorf("pay from cart: %w: status %d: %s",
			ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var verdict payCartResponse
	if err := json.Unmarshal(body, &verdict); err != nil || verdict.Success == nil {
		return model.PaymentResult{}, fmt.Errorf("pay from cart: %w: status %d: unexpected body: %s",
			ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	result := model.PaymentResult{Success: *verdict.Success, Message: verdict.Message}
	c.logger.Debug("Payment service answered",
		zap.String("wallet_id", req.WalletID),
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", result.Success))
	return result, nil
}

// isPayVerdictStatus статусы, с которыми сервис отвечает решением по платежу.
// Отказ приходит с 402 или 409, остальные 4xx значат, что до оплаты дело не дошло.
func isPayVerdictStatus(status int) bool {
	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return true
	case status == http.StatusPaymentRequired, status == http.StatusConflict:
		return true
	default:
		return false
	}
}

// GetBalance запрашивает баланс кошелька
func (c *HTTPClient) GetBalance(ctx context.Context, walletID string) (string, error) {
	balanceURL := fmt.Sprintf("%s/wallet/balance?wallet_id=%s", c.baseURL, url.QueryEscape(walletID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, balanceURL, nil)
	if err != nil {
		return "", fmt.Errorf("build balance request: %w", err)
	}
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("get balance: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("get balance: %w: status %d: %s",
			ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var balance balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		return "", fmt.Errorf("decode balance: %w: %v", ErrUnavailable, err)
	}

	return balance.Balance, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// Package telegram delivers notifications through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/notification"
)

const defaultBaseURL = "https://api.telegram.org"

// Client is a minimal Bot API client covering sendMessage. It implements
// notification.Notifier.
type Client struct {
	baseURL  string
	token    string
	adminIDs []int64
	http     *http.Client
}

func NewClient(token string, adminIDs []int64) *Client {
	return &Client{
		baseURL:  defaultBaseURL,
		token:    token,
		adminIDs: adminIDs,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL points the client at a non-default API host, used by
// tests and local bot-api servers.
func NewClientWithBaseURL(baseURL, token string, adminIDs []int64) *Client {
	c := NewClient(token, adminIDs)
	c.baseURL = baseURL
	return c
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

func (c *Client) NotifyEmployee(ctx context.Context, telegramID int64, text string, actions ...notification.Action) error {
	req := sendMessageRequest{ChatID: telegramID, Text: text}
	if len(actions) > 0 {
		row := make([]inlineKeyboardButton, 0, len(actions))
		for _, a := range actions {
			row = append(row, inlineKeyboardButton{Text: a.Label, CallbackData: a.Data})
		}
		req.ReplyMarkup = &inlineKeyboardMarkup{InlineKeyboard: [][]inlineKeyboardButton{row}}
	}
	return c.sendMessage(ctx, req)
}

// NotifyAdmins broadcasts to every configured admin chat. A failure for one
// chat is logged and delivery continues; the last error is returned.
func (c *Client) NotifyAdmins(ctx context.Context, text string) error {
	var lastErr error
	for _, chatID := range c.adminIDs {
		if err := c.sendMessage(ctx, sendMessageRequest{ChatID: chatID, Text: text}); err != nil {
			slog.Error("Telegram: failed to notify admin", "chat_id", chatID, "error", err)
			lastErr = err
		}
	}
	return lastErr
}

func (c *Client) sendMessage(ctx context.Context, req sendMessageRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode response: status=%s: %w", resp.Status, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram sendMessage failed: code=%d description=%s", apiResp.ErrorCode, apiResp.Description)
	}
	return nil
}

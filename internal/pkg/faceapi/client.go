// Package faceapi calls the external face comparison service.
package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the face comparison service over HTTP. It implements
// checkin.FaceVerifier.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type verifyRequest struct {
	TelegramID int64  `json:"telegram_id"`
	PhotoRef   string `json:"photo_ref"`
}

type verifyResponse struct {
	Similarity float64 `json:"similarity"`
	Match      bool    `json:"match"`
	Error      string  `json:"error"`
}

// Verify implements checkin.FaceVerifier. The service compares the submitted
// photo against the employee's enrolled reference and returns a similarity
// percentage.
func (c *Client) Verify(ctx context.Context, telegramID int64, photoRef string) (float64, bool, error) {
	body, err := json.Marshal(verifyRequest{TelegramID: telegramID, PhotoRef: photoRef})
	if err != nil {
		return 0, false, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/verify", c.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, false, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("face service returned status %s", resp.Status)
	}

	var verdict verifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&verdict); err != nil {
		return 0, false, fmt.Errorf("decode response: %w", err)
	}
	if verdict.Error != "" {
		return 0, false, fmt.Errorf("face service error: %s", verdict.Error)
	}
	return verdict.Similarity, verdict.Match, nil
}

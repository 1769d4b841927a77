// Package suggest calls an external generative-text service to prefill the
// vault description field. It is purely best-effort: any failure degrades to
// a fixed fallback string and never blocks vault creation.
package suggest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Fallback is returned whenever the upstream service cannot produce a
// suggestion.
const Fallback = "Could not generate a suggestion at this time. Please write your own message."

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type suggestRequest struct {
	Title string `json:"title"`
	// Image is the optional base64-encoded photo the message should evoke.
	Image string `json:"image,omitempty"`
}

type suggestResponse struct {
	OK         bool   `json:"ok"`
	Suggestion string `json:"suggestion"`
}

// Suggest asks the upstream service for a description suggestion. Errors are
// logged and swallowed; the caller always gets a usable string.
func (c *Client) Suggest(ctx context.Context, title string, image []byte) string {
	if c.BaseURL == "" {
		return Fallback
	}

	req := suggestRequest{Title: title}
	if len(image) > 0 {
		req.Image = base64.StdEncoding.EncodeToString(image)
	}
	b, _ := json.Marshal(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/suggest", bytes.NewReader(b))
	if err != nil {
		log.Printf("[warn] operation=suggest error=%v", err)
		return Fallback
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		log.Printf("[warn] operation=suggest error=%v", err)
		return Fallback
	}
	defer resp.Body.Close()

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[warn] operation=suggest error=%v", fmt.Errorf("decode: %w", err))
		return Fallback
	}
	if resp.StatusCode >= 400 || !out.OK || out.Suggestion == "" {
		log.Printf("[warn] operation=suggest status=%d ok=%v", resp.StatusCode, out.OK)
		return Fallback
	}

	return out.Suggestion
}

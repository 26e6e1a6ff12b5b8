package webhook

// webhook.go posts snapshot images with a text summary to a Discord-style
// webhook endpoint as a multipart request.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Message is the notification content posted alongside the snapshot image.
type Message struct {
	// Content is the message body (the world metadata summary)
	Content string `json:"content"`
	// Username overrides the webhook's display name
	Username string `json:"username,omitempty"`
	// AvatarURL overrides the webhook's avatar
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Client posts notifications to a webhook endpoint.
type Client struct {
	httpClient *http.Client
	url        string
}

// New creates a webhook client for the given endpoint.
func New(url string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		url:        url,
	}
}

// Send posts the message and the image file at imagePath to the webhook.
// The request is a multipart form with a payload_json part and the image
// as the first file attachment.
func (c *Client) Send(msg Message, imagePath string) error {
	image, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot image: %w", err)
	}
	defer image.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}
	if err := writer.WriteField("payload_json", string(payload)); err != nil {
		return fmt.Errorf("failed to write webhook payload: %w", err)
	}

	part, err := writer.CreateFormFile("files[0]", filepath.Base(imagePath))
	if err != nil {
		return fmt.Errorf("failed to create image form part: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return fmt.Errorf("failed to attach snapshot image: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize webhook request: %w", err)
	}

	resp, err := c.httpClient.Post(c.url, writer.FormDataContentType(), &body)
	if err != nil {
		return fmt.Errorf("failed to post to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook rejected notification: %s: %s", resp.Status, bytes.TrimSpace(detail))
	}

	return nil
}

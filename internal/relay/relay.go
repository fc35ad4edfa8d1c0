package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/resumatch/backend/internal/logger"
)

// fileField is the multipart field name the automation webhook expects the
// document under.
const fileField = "document"

const defaultTimeout = 60 * time.Second

// Client forwards uploaded documents plus job-context fields to the
// automation webhook as one multipart POST. A single attempt is made per
// call: the external processing is long-running and retries are not
// guaranteed to be idempotent.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// Opt configures a Client.
type Opt func(*Client)

// WithTimeout overrides the relay call timeout.
func WithTimeout(timeout time.Duration) Opt {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Opt {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a relay client for the given webhook URL.
func New(webhookURL string, opts ...Opt) *Client {
	c := &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Relay sends every field plus the file at filePath to the webhook and
// returns the JSON reply verbatim. Transport failures and non-2xx replies
// are errors; the reply body is never interpreted.
func (c *Client) Relay(ctx context.Context, fields map[string]string, filePath string) (json.RawMessage, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		err := writeForm(writer, fields, file, filepath.Base(filePath))
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read webhook reply: %w", err)
	}

	logger.Log.Infow("webhook relay",
		"url", c.webhookURL,
		"status", resp.StatusCode,
		"reply_size", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("webhook returned non-JSON reply")
	}

	return json.RawMessage(body), nil
}

func writeForm(writer *multipart.Writer, fields map[string]string, file io.Reader, filename string) error {
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return err
		}
	}

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}

	return writer.Close()
}

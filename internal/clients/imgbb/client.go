package imgbb

import (
	"bytes"
	"context"
	"fmt"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const DefaultUploadURL = "https://api.imgbb.com/1/upload"

type uploadResponse struct {
	Data struct {
		ID         string `json:"id"`
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	apiKey      string
	uploadURL   string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	retryDelay  time.Duration
}

func NewClient(apiKey string, uploadURL string) *Client {
	if uploadURL == "" {
		uploadURL = DefaultUploadURL
	}
	return &Client{
		apiKey:     apiKey,
		uploadURL:  uploadURL,
		httpClient: &http.Client{},
		retryDelay: 2 * time.Second,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) SetRetryDelay(delay time.Duration) {
	c.retryDelay = delay
}

// Upload sends the file at path to the media host and returns its public URL.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {

	var hostedURL string
	var err error

	_, _ = lo.AttemptWhile(3, func(i int) (error, bool) {
		if i > 0 {
			log.Warnf("media host returned server error, retrying upload of %s...", filepath.Base(path))
			if err = c.waitRetry(ctx); err != nil {
				return err, false
			}
		}
		hostedURL, err = c.upload(ctx, path)
		return err, isServerError(err) && ctx.Err() == nil
	})

	return hostedURL, err
}

func (c *Client) waitRetry(ctx context.Context) error {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) upload(ctx context.Context, path string) (string, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	body, contentType, err := multipartBody(path)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL+"?"+params.Encode(), body)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func multipartBody(path string) (io.Reader, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("error opening staged file: %w", err)
	}
	defer file.Close()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err = io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("error reading staged file: %w", err)
	}
	if err = writer.Close(); err != nil {
		return nil, "", err
	}

	return buf, writer.FormDataContentType(), nil
}

func (c *Client) handleResponse(resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var uploaded uploadResponse
	if err = json.Unmarshal(body, &uploaded); err != nil {
		return "", fmt.Errorf("error decoding JSON response: %w", err)
	}

	if !uploaded.Success || uploaded.Data.URL == "" {
		return "", fmt.Errorf("upload was not accepted, status %d", uploaded.Status)
	}

	return uploaded.Data.URL, nil
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %v, body: %v", e.StatusCode, e.Body)
}

func isServerError(err error) bool {
	statusErr, ok := err.(*StatusError)
	return ok && statusErr.StatusCode >= http.StatusInternalServerError
}

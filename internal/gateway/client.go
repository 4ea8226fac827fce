// Package gateway is a thin HTTP client for the DeOSS object gateway. The
// gateway authenticates callers through signed-message headers; this client
// only carries them, it never constructs signatures itself.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to a single DeOSS gateway endpoint on behalf of one account.
type Client struct {
	baseURL    string
	account    string
	httpClient *http.Client
}

// New creates a gateway client. account is the chain address the gateway
// attributes operations to.
func New(baseURL, account string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		account: account,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// CreateBucket creates a bucket owned by the client's account. message must
// be the bucket name and signature a signature over it by the account key.
func (c *Client) CreateBucket(ctx context.Context, bucket, message, signature string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("BucketName", bucket)
	req.Header.Set("Account", c.account)
	req.Header.Set("Message", message)
	req.Header.Set("Signature", signature)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("failed to create bucket: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}

// Upload stores the file at path into bucket via multipart PUT and returns
// the file id assigned by the gateway.
func (c *Client) Upload(ctx context.Context, path, bucket, message, signature string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat upload file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("not a file: %s", path)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("empty file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open upload file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("BucketName", bucket)
	req.Header.Set("Account", c.account)
	req.Header.Set("Message", message)
	req.Header.Set("Signature", signature)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > 0 {
			return "", fmt.Errorf("failed to upload: %s", strings.TrimSpace(string(body)))
		}
		return "", fmt.Errorf("failed to upload: %s", resp.Status)
	}

	return strings.Trim(strings.TrimSpace(string(body)), `"`), nil
}

// Download fetches the file identified by fid and writes it to dest.
func (c *Client) Download(ctx context.Context, fid, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+fid, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Operation", "download")
	req.Header.Set("Account", c.account)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("failed to download %s: %s: %s", fid, resp.Status, strings.TrimSpace(string(body)))
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

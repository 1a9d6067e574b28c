package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
)

// GenerateContent requests AI generation of an ad image and copy for a
// project. The call blocks until the backend finishes; generation commonly
// takes tens of seconds, so callers should pass a generous context.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/contents/generate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadContent uploads a source image as a multipart form with field "file".
// It bypasses the JSON request helper so the multipart writer controls the
// content type, but shares the header construction and error policy.
func (c *Client) UploadContent(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	const path = "/contents/upload"
	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.handleResponse(path, resp); err != nil {
		return nil, err
	}

	var uploadResp UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &uploadResp, nil
}

// ListContents returns the contents belonging to a project.
func (c *Client) ListContents(ctx context.Context, projectID int64) ([]Content, error) {
	var contents []Content
	path := "/contents/?project_id=" + strconv.FormatInt(projectID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// GetContent returns a single content record by ID.
func (c *Client) GetContent(ctx context.Context, id int64) (*Content, error) {
	var content Content
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/contents/%d", id), nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// DeleteContent removes a content record and its generated files.
func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/contents/%d", id), nil, nil)
}

// DownloadContentImage streams the protected result image for a content
// record into w. The endpoint requires the bearer header, so the image must
// be fetched explicitly rather than referenced by URL. Returns the number of
// bytes written.
func (c *Client) DownloadContentImage(ctx context.Context, id int64, w io.Writer) (int64, error) {
	path := fmt.Sprintf("/contents/%d/image", id)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.handleResponse(path, resp); err != nil {
		return 0, err
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read image: %w", err)
	}
	return n, nil
}

// Package wordpress provides a minimal client for the WordPress REST
// API media endpoint. The importer uses it to re-host row images when
// the upload_to_wordpress toggle is set.
package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"
)

// maxImageSize caps how much of a source image is read (20MB).
const maxImageSize = 20 * 1024 * 1024

// Client talks to one WordPress site using application-password basic
// auth.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client for the given site. baseURL is the site
// root; the wp-json/wp/v2 prefix is appended if not already present.
func NewClient(baseURL, username, appPassword string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(baseURL, "wp-json/wp/v2") {
		baseURL += "/wp-json/wp/v2"
	}
	return &Client{
		baseURL: baseURL,
		token:   base64.StdEncoding.EncodeToString([]byte(username + ":" + appPassword)),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// mediaResponse is the subset of the media create response we read.
type mediaResponse struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// UploadImage downloads the image at sourceURL and posts it to the
// media endpoint, returning the hosted URL.
func (c *Client) UploadImage(ctx context.Context, sourceURL string) (string, error) {
	data, contentType, err := c.fetchImage(ctx, sourceURL)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}

	fileName := imageFileName(sourceURL, contentType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/media", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+c.token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("upload media: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var media mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return "", fmt.Errorf("decode media response: %w", err)
	}
	return media.SourceURL, nil
}

// fetchImage downloads the source image and reports its content type.
func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// imageFileName derives an upload file name from the source URL,
// falling back to an extension guessed from the content type.
func imageFileName(sourceURL, contentType string) string {
	name := path.Base(strings.SplitN(sourceURL, "?", 2)[0])
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	if path.Ext(name) == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			name += exts[0]
		} else {
			name += ".jpg"
		}
	}
	return name
}

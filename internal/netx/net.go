// Package netx fetches documents shared over plain HTTP(S) links, such as
// presigned object-storage URLs handed out by a mentor.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxDownloadSize caps the size of a downloaded document.
const MaxDownloadSize = 32 << 20

// httpClient is a test seam.
var httpClient = http.DefaultClient

// IsURL reports whether s looks like an http or https link.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Download performs a GET on url and returns the body. Non-2xx responses and
// bodies larger than MaxDownloadSize are errors.
func Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxDownloadSize {
		return nil, fmt.Errorf("download exceeds %d bytes", MaxDownloadSize)
	}
	return body, nil
}

// Package apiclient is the single configured HTTP client every call to the
// school REST API goes through.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/config"
	"github.com/stemsi/sekolah-console/internal/model"
)

// HeaderAdminName carries the acting admin's name for server-side audit attribution.
const HeaderAdminName = "X-Admin-Name"

// maxBodyBytes bounds how much of a backend response is read.
const maxBodyBytes = 16 << 20

// Client sends JSON requests to the backend under /api/v1.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client for cfg.BackendURL with cfg.APITimeout per request.
func New(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL(),
		http:    &http.Client{Timeout: cfg.APITimeout},
		log:     log.With().Str("component", "api_client").Logger(),
	}
}

// Get fetches path into out. query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post sends in as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

// Put sends in as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, in, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, in, out)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do performs one JSON request. in and out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, in, out interface{}) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	data, _, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// Upload posts a multipart form with the given fields and one file part.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("copy file part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build upload %s: %w", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	data, _, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}

// send attaches credentials, executes req and applies the response policy:
// 401 clears the session's credentials, other non-2xx become *APIError.
func (c *Client) send(ctx context.Context, req *http.Request) ([]byte, string, error) {
	creds := CredentialsFrom(ctx)
	authorize(req, creds)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read %s %s: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Msg("Backend returned 401, clearing session")
		if creds != nil {
			if err := creds.Clear(ctx); err != nil {
				c.log.Error().Err(err).Msg("Failed to clear session after 401")
			}
		}
		return nil, "", newAPIError(resp.StatusCode, data)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", resp.StatusCode).
			Msg("Backend returned error")
		return nil, "", newAPIError(resp.StatusCode, data)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func authorize(req *http.Request, creds Credentials) {
	if creds == nil {
		return
	}
	if token := creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if u := creds.User(); u != nil && u.Role == model.RoleAdmin && u.Name != "" {
		req.Header.Set(HeaderAdminName, u.Name)
	}
}

// Package client talks to the inquiry API over HTTP. It satisfies
// intake.Submitter and triage.Store so the CLI reuses the same form and
// board logic as the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inquirydesk/backend/internal/model"
	"github.com/inquirydesk/backend/internal/service"
)

// Client is an inquiry API client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for baseURL. token is sent as a bearer token on
// admin calls when non-empty.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Code)
}

// Submit posts a contact form submission.
func (c *Client) Submit(ctx context.Context, in model.SubmissionInput) (*model.Submission, error) {
	var sub model.Submission
	if err := c.do(ctx, "insert", http.MethodPost, "/api/contact", in, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListResult is the admin list payload.
type ListResult struct {
	Submissions []*model.Submission `json:"submissions"`
	Counts      model.StatusCounts  `json:"counts"`
}

// Search asks the server to filter submissions. Counts cover every submission.
func (c *Client) Search(ctx context.Context, query string, filter model.StatusFilter) (*ListResult, error) {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if filter != "" && filter != model.FilterAll {
		v.Set("status", string(filter))
	}
	path := "/api/admin/submissions"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var res ListResult
	if err := c.do(ctx, "list", http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns every submission, newest first.
func (c *Client) List(ctx context.Context) ([]*model.Submission, error) {
	res, err := c.Search(ctx, "", model.FilterAll)
	if err != nil {
		return nil, err
	}
	return res.Submissions, nil
}

// Get fetches one submission.
func (c *Client) Get(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	if err := c.do(ctx, "get", http.MethodGet, "/api/admin/submissions/"+url.PathEscape(id), nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// PrivacyNotice returns the consent notice as Markdown.
func (c *Client) PrivacyNotice(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/privacy", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read notice: %w", err)
	}
	return string(b), nil
}

// UpdateStatus sets the status of one submission.
func (c *Client) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, "update", http.MethodPatch, "/api/admin/submissions/"+url.PathEscape(id)+"/status", body, nil)
}

// do performs one request. 400 responses become *model.ValidationError; any
// other failure is a *service.StoreError for op.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &service.StoreError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" && strings.HasPrefix(path, "/api/admin/") {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &service.StoreError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
		if resp.StatusCode == http.StatusBadRequest {
			if e.Error == "consent_required" {
				return model.ErrConsentRequired
			}
			return &model.ValidationError{Field: "request", Reason: e.Error}
		}
		return &service.StoreError{Op: op, Err: &APIError{StatusCode: resp.StatusCode, Code: e.Error}}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &service.StoreError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

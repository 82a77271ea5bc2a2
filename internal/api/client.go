package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Makepad-fr/gallery/internal/model"
)

// DefaultBaseURL is where the items service listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:5000"

// StatusError is a non-2xx answer from the service.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

func (e *StatusError) StatusCode() int { return e.Status }

// Client talks to the items REST service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

// New returns a client for baseURL. A zero timeout means requests never time out.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ListItems fetches GET /items and validates the payload.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/items")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.http().Do(req)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Op: "list items", Status: res.StatusCode}
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("list items: read body: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("list items: json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	if err := model.ValidateSequence(items); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// DeleteItem sends DELETE /items/{id}.
func (c *Client) DeleteItem(ctx context.Context, id model.ID) error {
	op := "delete item " + id.String()
	req, err := c.newRequest(ctx, http.MethodDelete, "/items/"+url.PathEscape(id.String()))
	if err != nil {
		return err
	}
	res, err := c.http().Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Op: op, Status: res.StatusCode}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func (c *Client) http() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

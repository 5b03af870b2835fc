// Package rest is a typed client of the upkeep HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"upkeep-server/internal/logger"
	"upkeep-server/internal/records/table"
)

var ErrNotFound = errors.New("not found")

// APIError is a non 2xx answer of the server.
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, field+": "+strings.Join(messages, ", "))
	}
	return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

type Entity struct {
	Name              string `json:"name"`
	DisplayName       string `json:"display_name"`
	DisplayNamePlural string `json:"display_name_plural"`
	Fields            []struct {
		Name     string `json:"name"`
		Label    string `json:"label"`
		Type     string `json:"type"`
		Required bool   `json:"required"`
	} `json:"fields"`
}

type Record struct {
	ID        string         `json:"id"`
	Entity    string         `json:"entity"`
	Values    map[string]any `json:"values"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type TableQuery struct {
	Page   int
	Limit  int
	Search string
	Equals map[string]string
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Entities(ctx context.Context) ([]Entity, error) {
	var out struct {
		Data []Entity `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/entities", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Table fetches one page of the rendered table of an entity.
func (c *Client) Table(ctx context.Context, entity string, q TableQuery) (table.View, Pagination, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	for k, v := range q.Equals {
		params.Set(k, v)
	}

	path := "/v1/entities/" + url.PathEscape(entity) + "/table"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out struct {
		Data struct {
			Headers []table.Header `json:"headers"`
			Rows    []table.Row    `json:"rows"`
			Actions table.Actions  `json:"actions"`
		} `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return table.View{}, Pagination{}, err
	}
	view := table.View{Headers: out.Data.Headers, Rows: out.Data.Rows, Actions: out.Data.Actions}
	return view, out.Pagination, nil
}

func (c *Client) Get(ctx context.Context, entity, id string) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodGet, recordPath(entity, id), nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, entity string, values map[string]any) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, "/v1/entities/"+url.PathEscape(entity)+"/records", map[string]any{"values": values}, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, entity, id string, values map[string]any) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPut, recordPath(entity, id), map[string]any{"values": values}, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, entity, id string) error {
	return c.do(ctx, http.MethodDelete, recordPath(entity, id), nil, nil)
}

func (c *Client) Export(ctx context.Context, entity string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/v1/entities/"+url.PathEscape(entity)+"/export.csv", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func recordPath(entity, id string) string {
	return "/v1/entities/" + url.PathEscape(entity) + "/records/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns error answers into *APIError. The
// caller closes the body of successful responses.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return nil, apiErr
}

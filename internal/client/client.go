// Package client talks to the revisit HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/revisit/internal/config"
	"github.com/at-ishikawa/revisit/internal/learning"
)

// APIError is an error response returned by the server.
type APIError struct {
	StatusCode int                       `json:"-"`
	Kind       string                    `json:"error"`
	Message    string                    `json:"message"`
	Details    []learning.FieldViolation `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("response error %d", e.StatusCode)
	}
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Message)
}

// Is lets callers match API errors against the learning package's sentinel errors.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return target == learning.ErrNotFound
	case http.StatusConflict:
		return target == learning.ErrConflict
	}
	return false
}

// ItemList is a page of learning items.
type ItemList struct {
	Items []learning.Item `json:"items"`
	Total int             `json:"total"`
}

// DueItems lists the items due for review with a per-subject summary.
type DueItems struct {
	Items     []learning.Item `json:"items"`
	TotalDue  int             `json:"total_due"`
	BySubject map[string]int  `json:"by_subject"`
}

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithRetryDelay sets the base delay between retried requests.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = delay
	}
}

func NewClient(cfg config.ClientConfig, opts ...Option) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/"))
	httpClient.SetHeader("Accept", "application/json")
	if cfg.TimeoutSeconds > 0 {
		httpClient.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}

	c := &Client{
		httpClient:       httpClient,
		maxRetryAttempts: cfg.RetryAttempts,
		retryDelay:       100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

func (c *Client) CreateItem(ctx context.Context, input learning.CreateInput) (*learning.Item, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&learning.Item{}).
		SetError(&APIError{}).
		Post("/learning-items/")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if err := responseError(response); err != nil {
		return nil, err
	}
	return response.Result().(*learning.Item), nil
}

func (c *Client) ListItems(ctx context.Context, query learning.ListQuery) (*ItemList, error) {
	params := map[string]string{}
	if query.Subject != "" {
		params["subject"] = query.Subject
	}
	if query.Skip > 0 {
		params["skip"] = strconv.Itoa(query.Skip)
	}
	if query.Limit > 0 {
		params["limit"] = strconv.Itoa(query.Limit)
	}

	var result ItemList
	if err := c.get(ctx, "/learning-items/", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Subjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := c.get(ctx, "/learning-items/subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (*learning.Item, error) {
	var item learning.Item
	if err := c.get(ctx, "/learning-items/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, input learning.UpdateInput) (*learning.Item, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(input).
		SetResult(&learning.Item{}).
		SetError(&APIError{}).
		Put("/learning-items/{id}")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Put > %w", err)
	}
	if err := responseError(response); err != nil {
		return nil, err
	}
	return response.Result().(*learning.Item), nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetError(&APIError{}).
		Delete("/learning-items/{id}")
	if err != nil {
		return fmt.Errorf("httpClient.Delete > %w", err)
	}
	return responseError(response)
}

// Due lists the items due on date. A zero date means the server's today.
func (c *Client) Due(ctx context.Context, subject string, date civil.Date) (*DueItems, error) {
	params := map[string]string{}
	if subject != "" {
		params["subject"] = subject
	}
	if !date.IsZero() {
		params["target_date"] = date.String()
	}

	var result DueItems
	if err := c.get(ctx, "/reviews/due", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) MarkReviewed(ctx context.Context, id string) (*learning.Review, error) {
	return c.postReview(ctx, "/reviews/{id}", id)
}

func (c *Client) ManualReview(ctx context.Context, id string) (*learning.Review, error) {
	return c.postReview(ctx, "/reviews/{id}/manual", id)
}

func (c *Client) History(ctx context.Context, id string, limit int) ([]learning.Review, error) {
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var reviews []learning.Review
	if err := c.get(ctx, "/reviews/history/"+url.PathEscape(id), params, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) Stats(ctx context.Context) (*learning.Stats, error) {
	var stats learning.Stats
	if err := c.get(ctx, "/reviews/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// postReview sends a review once. Only GETs are retried.
func (c *Client) postReview(ctx context.Context, path, id string) (*learning.Review, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&learning.Review{}).
		SetError(&APIError{}).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if err := responseError(response); err != nil {
		return nil, err
	}
	return response.Result().(*learning.Review), nil
}

// get performs a GET and decodes the body into result, retrying transport
// failures and 5xx responses.
func (c *Client) get(ctx context.Context, path string, params map[string]string, result any) error {
	return retry.Do(
		func() error {
			response, err := c.httpClient.R().
				SetContext(ctx).
				SetQueryParams(params).
				SetResult(result).
				SetError(&APIError{}).
				Get(path)
			if err != nil {
				return fmt.Errorf("httpClient.Get(%s) > %w", path, err)
			}
			if err := responseError(response); err != nil {
				if response.StatusCode() < http.StatusInternalServerError {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func responseError(response *resty.Response) error {
	if !response.IsError() {
		return nil
	}
	apiErr, ok := response.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.StatusCode = response.StatusCode()
	return apiErr
}

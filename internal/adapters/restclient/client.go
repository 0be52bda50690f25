// Package restclient implements memberstore.Store against the remote members API.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/ports/out/memberstore"
)

const maxErrorBody = 4 << 10

// Client talks to a REST member collection rooted at BaseURL.
// Every call is exactly one HTTP request; nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ memberstore.Store = (*Client)(nil)

func (c *Client) List(ctx context.Context) ([]domain.Member, error) {
	var out []memberDTO
	if err := c.do(ctx, http.MethodGet, "/members/", nil, &out); err != nil {
		return nil, err
	}
	ms := make([]domain.Member, 0, len(out))
	for _, m := range out {
		ms = append(ms, m.toDomain())
	}
	return ms, nil
}

func (c *Client) Create(ctx context.Context, f domain.MemberFields) (domain.Member, error) {
	var out memberDTO
	if err := c.do(ctx, http.MethodPost, "/members/", fieldsToDTO(f), &out); err != nil {
		return domain.Member{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) Update(ctx context.Context, m domain.Member) (domain.Member, error) {
	path, err := memberPath(m.ID)
	if err != nil {
		return domain.Member{}, err
	}
	body := updateDTO{MemID: string(m.ID), fieldsDTO: fieldsToDTO(m.MemberFields)}
	var out memberDTO
	if err := c.do(ctx, http.MethodPut, path, body, &out); err != nil {
		return domain.Member{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) Delete(ctx context.Context, id domain.MemberID) error {
	path, err := memberPath(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func memberPath(id domain.MemberID) (string, error) {
	if id == "" {
		return "", errors.New("member id is required")
	}
	p, err := runtime.StyleParamWithLocation("simple", false, "memberId", runtime.ParamLocationPath, string(id))
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter memberId: %w", err)
	}
	return "/members/" + p + "/", nil
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("member store request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("member store request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(b)}
	}
	if respBody == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

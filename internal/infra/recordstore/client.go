package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const maxPageSize = 100

type Record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

type SortField struct {
	Field string
	Desc  bool
}

type ListOptions struct {
	Filter   string
	Sort     []SortField
	Fields   []string
	PageSize int
	// Offset is the opaque cursor returned by a previous List call.
	Offset string
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// Client talks to one Airtable base. Every call is a single round trip; the
// client keeps no state between calls and never retries.
type Client struct {
	HTTPClient *http.Client
	baseURL    string
	apiKey     string
	baseID     string
	logger     zerolog.Logger
}

func NewClient(baseURL, apiKey, baseID string, logger zerolog.Logger) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		baseID:     baseID,
		logger:     logger.With().Str("component", "airtable").Logger(),
	}
}

func (c *Client) checkConfigured(table string) error {
	var missing []string
	if c.apiKey == "" {
		missing = append(missing, "AIRTABLE_API_KEY")
	}
	if c.baseID == "" {
		missing = append(missing, "AIRTABLE_BASE_ID")
	}
	if table == "" {
		missing = append(missing, "table name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
}

// List returns one page of records and the cursor for the next page, which
// is empty on the last page.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]Record, string, error) {
	if err := c.checkConfigured(table); err != nil {
		return nil, "", err
	}

	q := url.Values{}
	if opts.Filter != "" {
		q.Set("filterByFormula", opts.Filter)
	}
	for i, s := range opts.Sort {
		q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		dir := "asc"
		if s.Desc {
			dir = "desc"
		}
		q.Set(fmt.Sprintf("sort[%d][direction]", i), dir)
	}
	for _, f := range opts.Fields {
		q.Add("fields[]", f)
	}
	if opts.PageSize > 0 {
		size := opts.PageSize
		if size > maxPageSize {
			size = maxPageSize
		}
		q.Set("pageSize", strconv.Itoa(size))
	}
	if opts.Offset != "" {
		q.Set("offset", opts.Offset)
	}

	endpoint := c.tableURL(table)
	if enc := q.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	var out listResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, "", err
	}
	return out.Records, out.Offset, nil
}

// ListAll follows offset cursors until the store reports no further pages.
func (c *Client) ListAll(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	if opts.PageSize == 0 {
		opts.PageSize = maxPageSize
	}
	var all []Record
	for {
		page, next, err := c.List(ctx, table, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		opts.Offset = next
	}
}

func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	if err := c.checkConfigured(table); err != nil {
		return nil, err
	}
	var rec Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	if err := c.checkConfigured(table); err != nil {
		return nil, err
	}
	var rec Record
	if err := c.do(ctx, http.MethodPost, c.tableURL(table), map[string]any{"fields": fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update patches only the given fields.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (*Record, error) {
	if err := c.checkConfigured(table); err != nil {
		return nil, err
	}
	var rec Record
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table)+"/"+url.PathEscape(id), map[string]any{"fields": fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("airtable: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("airtable: build request: %w", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("airtable: %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("airtable: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := decodeError(resp.StatusCode, respBody)
		c.logger.Warn().
			Str("method", method).
			Int("status", resp.StatusCode).
			Str("error_type", upErr.Type).
			Str("category", upErr.Category()).
			Str("body", string(respBody)).
			Msg("airtable request failed")
		return upErr
	}

	c.logger.Debug().Str("method", method).Dur("elapsed", time.Since(start)).Msg("airtable request")

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("airtable: decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// decodeError reads both error shapes the store uses:
// {"error":"NOT_FOUND"} and {"error":{"type":"...","message":"..."}}.
func decodeError(status int, body []byte) *UpstreamError {
	upErr := &UpstreamError{Status: status, Message: http.StatusText(status)}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		if len(body) > 0 {
			upErr.Message = string(body)
		}
		return upErr
	}

	var code string
	if err := json.Unmarshal(envelope.Error, &code); err == nil {
		upErr.Type = code
		return upErr
	}

	var detail struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &detail); err == nil {
		upErr.Type = detail.Type
		if detail.Message != "" {
			upErr.Message = detail.Message
		}
	}
	return upErr
}

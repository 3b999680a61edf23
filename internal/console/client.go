package console

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

	"github.com/saltandserenity/booking/internal/entity"
)

type RecordsPage struct {
	Records    []entity.Lead `json:"records"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// Event is an event as returned by the admin API.
type Event struct {
	ID     string      `json:"id"`
	Fields EventFields `json:"fields"`
}

type EventFields struct {
	TypeOfEvent    string   `json:"Type of Event"`
	Adults         int      `json:"# of Adults"`
	Children       int      `json:"# of Children"`
	EventDate      string   `json:"Event Date"`
	Status         string   `json:"Status"`
	Notes          string   `json:"Notes"`
	FinancialNotes string   `json:"Financial Notes"`
	Lead           []string `json:"Lead"`
}

// EventInput is the body of an event create. For updates only the set
// pointer fields of EventPatch are sent.
type EventInput struct {
	TypeOfEvent      string `json:"typeOfEvent"`
	NumberOfAdults   int    `json:"numberOfAdults"`
	NumberOfChildren int    `json:"numberOfChildren"`
	DateOfEvent      string `json:"dateOfEvent"`
	Status           string `json:"status,omitempty"`
	Notes            string `json:"notes,omitempty"`
	FinancialNotes   string `json:"financialNotes,omitempty"`
	LeadID           string `json:"leadId"`
}

type EventPatch struct {
	TypeOfEvent      *string `json:"typeOfEvent,omitempty"`
	NumberOfAdults   *int    `json:"numberOfAdults,omitempty"`
	NumberOfChildren *int    `json:"numberOfChildren,omitempty"`
	DateOfEvent      *string `json:"dateOfEvent,omitempty"`
	Status           *string `json:"status,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	FinancialNotes   *string `json:"financialNotes,omitempty"`
}

type InviteResult struct {
	Success      bool             `json:"success"`
	User         entity.AdminUser `json:"user"`
	EmailWarning string           `json:"emailWarning,omitempty"`
}

// APIError is a non-2xx answer from the admin API.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"error"`
	Details string `json:"details"`
	Field   string `json:"field"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return fmt.Sprintf("status %d: %s", e.Status, msg)
}

// APIClient calls the back-office HTTP API with a bearer ID token.
type APIClient struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
	}
}

func (c *APIClient) Records(ctx context.Context, page int) (*RecordsPage, error) {
	var out RecordsPage
	err := c.do(ctx, http.MethodGet, "/api/admin/records?page="+strconv.Itoa(page), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Referrers(ctx context.Context) ([]entity.Referrer, error) {
	var out struct {
		Referrers []entity.Referrer `json:"referrers"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/referrers", nil, &out); err != nil {
		return nil, err
	}
	return out.Referrers, nil
}

func (c *APIClient) Events(ctx context.Context, leadID string) ([]Event, error) {
	path := "/api/admin/events"
	if leadID != "" {
		path += "?leadId=" + url.QueryEscape(leadID)
	}
	var out struct {
		Events []Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *APIClient) CreateEvent(ctx context.Context, in EventInput) (*Event, error) {
	var out Event
	if err := c.do(ctx, http.MethodPost, "/api/admin/events", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error) {
	var out Event
	if err := c.do(ctx, http.MethodPatch, "/api/admin/events/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) SetLeadStatus(ctx context.Context, id, status string) (*entity.Lead, error) {
	var out entity.Lead
	err := c.do(ctx, http.MethodPatch, "/api/admin/records/"+url.PathEscape(id), map[string]string{"status": status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Users(ctx context.Context) ([]entity.AdminUser, error) {
	var out struct {
		Users []entity.AdminUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *APIClient) InviteUser(ctx context.Context, email string) (*InviteResult, error) {
	var out InviteResult
	if err := c.do(ctx, http.MethodPost, "/api/admin/users", map[string]string{"email": email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/users", map[string]string{"user_id": userID}, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		json.Unmarshal(respBody, apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Backend is the part of APIClient the terminal UI reads and writes
// through.
type Backend interface {
	Records(ctx context.Context, page int) (*RecordsPage, error)
	Referrers(ctx context.Context) ([]entity.Referrer, error)
	Events(ctx context.Context, leadID string) ([]Event, error)
	Users(ctx context.Context) ([]entity.AdminUser, error)

	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
	InviteUser(ctx context.Context, email string) (*InviteResult, error)
	DeleteUser(ctx context.Context, userID string) error
}

// Fetch runs req against b. The records view also carries the referrer
// list, so both are loaded together.
func Fetch(ctx context.Context, b Backend, req Request) Result {
	res := Result{Request: req}
	switch req.Kind {
	case KindRecords:
		res.Records, res.Err = b.Records(ctx, req.Page)
		if res.Err == nil {
			res.Referrers, res.Err = b.Referrers(ctx)
		}
	case KindEvents:
		res.Events, res.Err = b.Events(ctx, req.LeadID)
	case KindUsers:
		res.Users, res.Err = b.Users(ctx)
	default:
		res.Err = fmt.Errorf("unknown request kind %q", req.Kind)
	}
	return res
}

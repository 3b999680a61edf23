package identity

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/saltandserenity/booking/internal/entity"
)

const (
	passwordConnection = "Username-Password-Authentication"
	adminRoleName      = "admin"
	usersPerPage       = 100
)

type ManagementConfig struct {
	Domain         string
	ClientID       string
	ClientSecret   string
	ResetResultURL string
	// BaseURL overrides https://{Domain}; used by tests.
	BaseURL string
}

// Invitation is the outcome of inviting an admin. ResetLink lets the new
// user choose a password; no password is ever handed back.
type Invitation struct {
	User      entity.AdminUser
	ResetLink string
}

// ManagementClient wraps the Auth0 Management API v2. Each operation fetches
// its own short-lived token and nothing is kept between calls.
type ManagementClient struct {
	HTTPClient *http.Client
	cfg        ManagementConfig
	logger     zerolog.Logger
}

func NewManagementClient(cfg ManagementConfig, logger zerolog.Logger) *ManagementClient {
	if cfg.BaseURL == "" && cfg.Domain != "" {
		cfg.BaseURL = "https://" + cfg.Domain
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &ManagementClient{
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		cfg:        cfg,
		logger:     logger.With().Str("component", "auth0").Logger(),
	}
}

func (c *ManagementClient) checkConfigured() error {
	var missing []string
	if c.cfg.Domain == "" {
		missing = append(missing, "AUTH0_DOMAIN")
	}
	if c.cfg.ClientID == "" {
		missing = append(missing, "AUTH0_MGMT_CLIENT_ID")
	}
	if c.cfg.ClientSecret == "" {
		missing = append(missing, "AUTH0_MGMT_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

func (c *ManagementClient) token(ctx context.Context) (string, error) {
	if err := c.checkConfigured(); err != nil {
		return "", err
	}
	cc := clientcredentials.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		TokenURL:     c.cfg.BaseURL + "/oauth/token",
		EndpointParams: url.Values{
			"audience": {"https://" + c.cfg.Domain + "/api/v2/"},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
	tok, err := cc.Token(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("management token exchange failed")
		return "", fmt.Errorf("%w: %v", ErrAuthBackendUnavailable, err)
	}
	return tok.AccessToken, nil
}

func (c *ManagementClient) ListUsers(ctx context.Context) ([]entity.AdminUser, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	return c.listUsers(ctx, tok)
}

func (c *ManagementClient) listUsers(ctx context.Context, tok string) ([]entity.AdminUser, error) {
	users := []entity.AdminUser{}
	for page := 0; ; page++ {
		q := url.Values{}
		q.Set("fields", "user_id,email,name,email_verified,last_login")
		q.Set("per_page", strconv.Itoa(usersPerPage))
		q.Set("page", strconv.Itoa(page))

		var batch []entity.AdminUser
		if err := c.do(ctx, tok, "list users", http.MethodGet, "/api/v2/users?"+q.Encode(), nil, &batch); err != nil {
			return nil, err
		}
		users = append(users, batch...)
		if len(batch) < usersPerPage {
			return users, nil
		}
	}
}

// InviteUser creates a password-connection account, grants it the admin
// role and issues a password-change ticket. The role is resolved before the
// account is created so a missing role leaves nothing behind.
func (c *ManagementClient) InviteUser(ctx context.Context, email string) (*Invitation, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	roleID, err := c.findRole(ctx, tok, adminRoleName)
	if err != nil {
		return nil, err
	}

	password, err := randomPassword()
	if err != nil {
		return nil, fmt.Errorf("auth0: generate password: %w", err)
	}

	var created entity.AdminUser
	err = c.do(ctx, tok, "create user", http.MethodPost, "/api/v2/users", map[string]any{
		"email":          email,
		"connection":     passwordConnection,
		"password":       password,
		"email_verified": false,
		"verify_email":   false,
	}, &created)
	if err != nil {
		return nil, err
	}

	err = c.do(ctx, tok, "assign role", http.MethodPost,
		"/api/v2/users/"+url.PathEscape(created.UserID)+"/roles",
		map[string]any{"roles": []string{roleID}}, nil)
	if err != nil {
		c.logIncompleteInvite(err, created, "assign role")
		return nil, err
	}

	var ticket struct {
		Ticket string `json:"ticket"`
	}
	err = c.do(ctx, tok, "create password ticket", http.MethodPost, "/api/v2/tickets/password-change", map[string]any{
		"user_id":                created.UserID,
		"result_url":             c.cfg.ResetResultURL,
		"mark_email_as_verified": true,
	}, &ticket)
	if err != nil {
		c.logIncompleteInvite(err, created, "create password ticket")
		return nil, err
	}

	c.logger.Info().Str("user_id", created.UserID).Msg("admin user invited")
	return &Invitation{User: created, ResetLink: ticket.Ticket}, nil
}

// logIncompleteInvite records an account that exists in the tenant but has
// no role or no reset link, so an operator can finish or remove it.
func (c *ManagementClient) logIncompleteInvite(err error, created entity.AdminUser, step string) {
	c.logger.Error().Err(err).
		Str("user_id", created.UserID).
		Str("email", created.Email).
		Str("failed_step", step).
		Msg("invite left an incomplete account")
}

func (c *ManagementClient) findRole(ctx context.Context, tok, name string) (string, error) {
	var roles []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.do(ctx, tok, "list roles", http.MethodGet, "/api/v2/roles?name_filter="+url.QueryEscape(name), nil, &roles); err != nil {
		return "", err
	}
	for _, r := range roles {
		if r.Name == name {
			return r.ID, nil
		}
	}
	return "", ErrRoleNotFound
}

// DeleteUser refuses to remove the only remaining user.
func (c *ManagementClient) DeleteUser(ctx context.Context, userID string) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}
	users, err := c.listUsers(ctx, tok)
	if err != nil {
		return err
	}
	if len(users) <= 1 {
		return ErrLastUserProtected
	}
	if err := c.do(ctx, tok, "delete user", http.MethodDelete, "/api/v2/users/"+url.PathEscape(userID), nil, nil); err != nil {
		return err
	}
	c.logger.Info().Str("user_id", userID).Msg("admin user deleted")
	return nil
}

func (c *ManagementClient) do(ctx context.Context, tok, op, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("auth0: encode %s: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("auth0: build %s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth0: %s: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().Str("op", op).Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("management api error")
		return &UpstreamError{Op: op, Status: resp.StatusCode, Message: upstreamMessage(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("auth0: decode %s: %w", op, err)
	}
	return nil
}

func upstreamMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return strings.TrimSpace(string(body))
}

const passwordBytes = 32

// randomPassword satisfies the connection's strength policy and is never
// shown to anyone; the invitee sets their own through the reset ticket.
func randomPassword() (string, error) {
	buf := make([]byte, passwordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf) + "!Aa1", nil
}

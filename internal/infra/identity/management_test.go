package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltandserenity/booking/internal/entity"
)

type fakeTenant struct {
	mu          sync.Mutex
	users       []entity.AdminUser
	roles       []map[string]string
	tokenStatus int
	roleStatus  int
	deleted     []string
	assigned    map[string][]string
	tokenCalls  int
}

func (f *fakeTenant) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.tokenCalls++
		f.mu.Unlock()
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "https://tenant.test/api/v2/", r.PostForm.Get("audience"))
		if f.tokenStatus != 0 {
			w.WriteHeader(f.tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"mgmt-token","token_type":"Bearer","expires_in":86400}`))
	})
	mux.HandleFunc("/api/v2/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer mgmt-token", r.Header.Get("Authorization"))
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "user_id,email,name,email_verified,last_login", r.URL.Query().Get("fields"))
			json.NewEncoder(w).Encode(f.users)
		case http.MethodPost:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Username-Password-Authentication", body["connection"])
			assert.Equal(t, false, body["verify_email"])
			// 32 random bytes, base64url without padding, plus the policy suffix.
			assert.Len(t, body["password"], 43+4)
			u := entity.AdminUser{UserID: "auth0|new", Email: body["email"].(string)}
			f.users = append(f.users, u)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(u)
		}
	})
	mux.HandleFunc("/api/v2/users/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		rest := strings.TrimPrefix(r.URL.Path, "/api/v2/users/")
		if strings.HasSuffix(rest, "/roles") {
			if f.roleStatus != 0 {
				w.WriteHeader(f.roleStatus)
				w.Write([]byte(`{"message":"Insufficient scope, expected any of: create:role_members"}`))
				return
			}
			var body struct {
				Roles []string `json:"roles"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if f.assigned == nil {
				f.assigned = map[string][]string{}
			}
			f.assigned[strings.TrimSuffix(rest, "/roles")] = body.Roles
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method == http.MethodDelete {
			f.deleted = append(f.deleted, rest)
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/api/v2/roles", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.roles)
	})
	mux.HandleFunc("/api/v2/tickets/password-change", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["mark_email_as_verified"])
		assert.Equal(t, "https://salt-and-serenity.com/reset-complete", body["result_url"])
		json.NewEncoder(w).Encode(map[string]string{"ticket": "https://tenant.test/lo/reset?ticket=abc"})
	})
	return mux
}

func newTestManagement(t *testing.T, tenant *fakeTenant) *ManagementClient {
	t.Helper()
	srv := httptest.NewServer(tenant.handler(t))
	t.Cleanup(srv.Close)
	return NewManagementClient(ManagementConfig{
		Domain:         "tenant.test",
		ClientID:       "mgmt",
		ClientSecret:   "secret",
		ResetResultURL: "https://salt-and-serenity.com/reset-complete",
		BaseURL:        srv.URL,
	}, zerolog.Nop())
}

func TestInviteUserThenListShowsUnverified(t *testing.T) {
	tenant := &fakeTenant{
		users: []entity.AdminUser{{UserID: "auth0|owner", Email: "iris@example.com", EmailVerified: true}},
		roles: []map[string]string{{"id": "rol_viewer", "name": "viewer"}, {"id": "rol_admin", "name": "admin"}},
	}
	c := newTestManagement(t, tenant)

	inv, err := c.InviteUser(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", inv.User.Email)
	assert.Equal(t, "https://tenant.test/lo/reset?ticket=abc", inv.ResetLink)
	assert.Equal(t, []string{"rol_admin"}, tenant.assigned["auth0|new"])

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "new@example.com", users[1].Email)
	assert.False(t, users[1].EmailVerified)
}

func TestInviteUserWithoutAdminRoleCreatesNothing(t *testing.T) {
	tenant := &fakeTenant{roles: []map[string]string{{"id": "rol_viewer", "name": "viewer"}}}
	c := newTestManagement(t, tenant)

	_, err := c.InviteUser(context.Background(), "new@example.com")

	assert.ErrorIs(t, err, ErrRoleNotFound)
	assert.Empty(t, tenant.users)
}

func TestDeleteLastUserIsRefused(t *testing.T) {
	tenant := &fakeTenant{users: []entity.AdminUser{{UserID: "auth0|owner", Email: "iris@example.com"}}}
	c := newTestManagement(t, tenant)

	err := c.DeleteUser(context.Background(), "auth0|owner")

	assert.ErrorIs(t, err, ErrLastUserProtected)
	assert.Empty(t, tenant.deleted)
}

func TestDeleteUserWhenOthersRemain(t *testing.T) {
	tenant := &fakeTenant{users: []entity.AdminUser{{UserID: "auth0|a"}, {UserID: "auth0|b"}}}
	c := newTestManagement(t, tenant)

	require.NoError(t, c.DeleteUser(context.Background(), "auth0|b"))
	assert.Equal(t, []string{"auth0|b"}, tenant.deleted)
}

func TestTokenFailureIsAuthBackendUnavailable(t *testing.T) {
	tenant := &fakeTenant{tokenStatus: http.StatusUnauthorized}
	c := newTestManagement(t, tenant)

	_, err := c.ListUsers(context.Background())

	assert.True(t, errors.Is(err, ErrAuthBackendUnavailable))
}

func TestEachCallFetchesItsOwnToken(t *testing.T) {
	tenant := &fakeTenant{}
	c := newTestManagement(t, tenant)

	_, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	_, err = c.ListUsers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, tenant.tokenCalls)
}

func TestManagementNotConfigured(t *testing.T) {
	c := NewManagementClient(ManagementConfig{Domain: "tenant.test"}, zerolog.Nop())

	_, err := c.ListUsers(context.Background())

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "AUTH0_MGMT_CLIENT_ID")
}

func TestUpstreamMessageFromBody(t *testing.T) {
	assert.Equal(t, "The user already exists.", upstreamMessage([]byte(`{"statusCode":409,"error":"Conflict","message":"The user already exists."}`)))
	assert.Equal(t, "plain", upstreamMessage([]byte("plain")))
}

func TestInviteUserRoleFailureLogsCreatedAccount(t *testing.T) {
	tenant := &fakeTenant{
		users:      []entity.AdminUser{{UserID: "auth0|owner", Email: "iris@example.com"}},
		roles:      []map[string]string{{"id": "rol_admin", "name": "admin"}},
		roleStatus: http.StatusForbidden,
	}
	c := newTestManagement(t, tenant)
	var logs bytes.Buffer
	c.logger = zerolog.New(&logs)

	inv, err := c.InviteUser(context.Background(), "new@example.com")

	assert.Nil(t, inv)
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "assign role", upErr.Op)
	assert.Contains(t, logs.String(), `"user_id":"auth0|new"`)
	assert.Contains(t, logs.String(), `"failed_step":"assign role"`)
	assert.Contains(t, logs.String(), "invite left an incomplete account")
}

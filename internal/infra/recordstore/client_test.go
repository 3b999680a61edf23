package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "key-123", "appBase", zerolog.Nop())
}

func TestListSendsQueryAndAuth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appBase/Events", r.URL.Path)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "{Lead} = 'rec1'", q.Get("filterByFormula"))
		assert.Equal(t, "Event Date", q.Get("sort[0][field]"))
		assert.Equal(t, "desc", q.Get("sort[0][direction]"))
		assert.Equal(t, "100", q.Get("pageSize"))

		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{"id": "recE", "fields": map[string]any{"Type of Event": "Dinner"}}},
			"offset":  "itr2",
		})
	})

	recs, next, err := c.List(context.Background(), "Events", ListOptions{
		Filter:   leadFilter("rec1"),
		Sort:     []SortField{{Field: "Event Date", Desc: true}},
		PageSize: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, "itr2", next)
	require.Len(t, recs, 1)
	assert.Equal(t, "Dinner", recs[0].Fields["Type of Event"])
}

func TestListAllFollowsOffsets(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("offset") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec1"}, {"id": "rec2"}},
				"offset":  "next",
			})
			return
		}
		assert.Equal(t, "next", r.URL.Query().Get("offset"))
		json.NewEncoder(w).Encode(map[string]any{"records": []map[string]any{{"id": "rec3"}}})
	})

	recs, err := c.ListAll(context.Background(), "Leads", ListOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, recs, 3)
}

func TestUpstreamErrorShapes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		category string
		notFound bool
	}{
		{"permissions", 403, `{"error":{"type":"INVALID_PERMISSIONS","message":"no access"}}`, "permission", false},
		{"table", 404, `{"error":{"type":"TABLE_NOT_FOUND","message":"gone"}}`, "schema", false},
		{"field", 422, `{"error":{"type":"UNKNOWN_FIELD_NAME","message":"Unknown field name: \"Foo\""}}`, "field", false},
		{"record", 404, `{"error":"NOT_FOUND"}`, "not_found", true},
		{"opaque", 500, `oops`, "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Get(context.Background(), "Leads", "recX")

			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tt.status, upErr.Status)
			assert.Equal(t, tt.category, upErr.Category())
			assert.Equal(t, tt.notFound, IsNotFound(err))
		})
	}
}

func TestNotConfiguredFailsWithoutNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(srv.URL, "", "appBase", zerolog.Nop())
	_, err := c.Create(context.Background(), "", map[string]any{})

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "AIRTABLE_API_KEY")
	assert.Contains(t, err.Error(), "table name")
	assert.False(t, called)
}

func TestUpdateSendsPatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/appBase/Events/recE", r.URL.Path)
		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Scheduled", body["fields"]["Status"])
		assert.NotContains(t, body["fields"], "Lead")
		json.NewEncoder(w).Encode(map[string]any{"id": "recE", "fields": body["fields"]})
	})

	rec, err := c.Update(context.Background(), "Events", "recE", map[string]any{"Status": "Scheduled"})

	require.NoError(t, err)
	assert.Equal(t, "recE", rec.ID)
}

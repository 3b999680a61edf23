package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltandserenity/booking/internal/console"
)

func TestPatchFromFlagsSendsOnlyChangedFields(t *testing.T) {
	require.NoError(t, eventsUpdateCmd.ParseFlags([]string{"--adults", "0", "--status", "Scheduled"}))

	p := patchFromFlags(eventsUpdateCmd)

	require.NotNil(t, p.NumberOfAdults)
	assert.Equal(t, 0, *p.NumberOfAdults)
	require.NotNil(t, p.Status)
	assert.Equal(t, "Scheduled", *p.Status)
	assert.Nil(t, p.TypeOfEvent)
	assert.Nil(t, p.NumberOfChildren)
}

func TestEventRowTrimsDate(t *testing.T) {
	row := eventRow(console.Event{ID: "recE1", Fields: console.EventFields{
		TypeOfEvent: "Dinner",
		EventDate:   "2025-06-01T00:00:00.000Z",
		Adults:      4,
		Lead:        []string{"recL1"},
	}})

	assert.Equal(t, []string{"recE1", "Dinner", "2025-06-01", "4", "0", "", "recL1", ""}, row)
}

func TestUsersDeleteCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--api", srv.URL, "--token", "tok", "users", "delete", "auth0|1"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "deleted auth0|1\n", out.String())
}

func TestReferrersLinkToPublicSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/referrers", r.URL.Path)
		w.Write([]byte(`{"referrers":[{"id":"recR1","fullName":"Kai","email":"kai@example.com","referralsCount":3}]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--api", srv.URL, "--site", "https://salt-and-serenity.com/", "--token", "tok", "referrers"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "https://salt-and-serenity.com/contact?ref=recR1")
	assert.NotContains(t, out.String(), srv.URL)
}

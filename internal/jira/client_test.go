package jira

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Client_BearerAuthHeader(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, AuthBearer, "tok123")
	var out map[string]interface{}
	require.NoError(t, c.Get(context.Background(), "/rest/api/2/myself", nil, &out))
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func Test_Client_BasicAuthHeader(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, AuthBasic, "dXNlcjpwYXNz")
	var out map[string]interface{}
	require.NoError(t, c.Get(context.Background(), "/rest/api/2/myself", nil, &out))
	assert.Equal(t, "Basic dXNlcjpwYXNz", gotAuth)
}

func Test_Client_DecodesJiraError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorMessages":["Field 'description' cannot be set"],"errors":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, AuthBearer, "tok")
	status, err := c.Put(context.Background(), "/rest/api/2/issue/LOL-1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Field 'description' cannot be set")
}

func Test_Client_Unauthorized(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, AuthBearer, "bad")
	var out Myself
	err := c.Get(context.Background(), "/rest/api/2/myself", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed (401)")
}

func Test_Client_Myself(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/myself", r.URL.Path)
		w.Write([]byte(`{"name":"hmartinez","displayName":"Heberth Martinez","active":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, AuthBearer, "tok")
	name, err := c.Myself(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Heberth Martinez", name)
}

func Test_Client_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/myself", r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", AuthBearer, "tok")
	var out Myself
	require.NoError(t, c.Get(context.Background(), "/rest/api/2/myself", nil, &out))
}

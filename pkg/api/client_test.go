package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenmart/tokenmart.go/pkg/api"
	"github.com/tokenmart/tokenmart.go/pkg/models"
)

func TestClientSendsAuthAndContentType(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode([]models.Company{})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	client.SetAuthToken("tok-123")

	_, err := client.Companies().GetAll(context.Background(), 0, 50, "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClientListQueryParams(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode([]models.Company{})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	_, err := client.Companies().GetAll(context.Background(), 10, 25, "  acme  ")
	require.NoError(t, err)

	assert.Equal(t, []string{"10"}, got["skip"])
	assert.Equal(t, []string{"25"}, got["take"])
	assert.Equal(t, []string{"acme"}, got["search"], "search is trimmed")

	_, err = client.Companies().GetAll(context.Background(), 0, 50, "   ")
	require.NoError(t, err)
	assert.NotContains(t, got, "search", "blank search is omitted")
}

func TestClientRowVersionQueryPropagation(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	rec, err := client.Requests().Authorize(context.Background(), 5, "AAEE")
	require.NoError(t, err)
	assert.Nil(t, rec, "an empty acknowledgment decodes to no record")

	assert.Equal(t, []string{"5"}, gotQuery["requestId"])
	assert.Equal(t, []string{"AAEE"}, gotQuery["rowVersion"])
}

func TestClientDecodesCanonicalRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Request{ID: 5, RowVersion: "v2", Status: models.RequestAuthorized})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	rec, err := client.Requests().Authorize(context.Background(), 5, "v1")
	require.NoError(t, err)

	require.NotNil(t, rec)
	assert.Equal(t, "v2", rec.RowVersion)
	assert.Equal(t, models.RequestAuthorized, rec.Status)
}

func TestClientNullBodyDecodesToNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	rec, err := client.Requests().Approve(context.Background(), 5, "v1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestClientLoginRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	creds := models.Credentials{UserName: "acme", Password: "secret"}

	res, err := client.Companies().Login(context.Background(), creds)
	require.Error(t, err, "a login must never succeed without a result")
	assert.Nil(t, res)

	ires, err := client.Investors().Login(context.Background(), creds)
	require.Error(t, err)
	assert.Nil(t, ires)

	ares, err := client.Admins().Login(context.Background(), creds)
	require.Error(t, err)
	assert.Nil(t, ares)
}

func TestClientNotFoundHandlerInvokedOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Company 99 was not found.", http.StatusNotFound)
	}))
	defer srv.Close()

	var calls int
	var gotMessage string
	client := api.NewClient(srv.URL, api.WithNotFoundHandler(func(method, path string, err *api.Error) {
		calls++
		gotMessage = err.ServerMessage()
	}))

	_, err := client.Companies().GetByID(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Company 99 was not found.", gotMessage)
}

func TestClientConflictMarksStaleToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The record was modified by another user.", http.StatusConflict)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	err := client.Companies().Delete(context.Background(), 1, 1)
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.True(t, apiErr.StaleToken())
	assert.Equal(t, "The record was modified by another user.", apiErr.ServerMessage())
}

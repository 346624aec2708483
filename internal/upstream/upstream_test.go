package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-codelists/codelist"
)

type payload struct {
	Codes []struct {
		Code string `json:"code"`
	} `json:"codes"`
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, AcceptHeader, r.Header.Get("Accept"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetJSON_Decodes(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"codes":[{"code":"1"},{"code":"2"}]}`)

	var got payload
	empty, err := GetJSON(context.Background(), srv.Client(), srv.URL, &got)
	require.NoError(t, err)
	assert.False(t, empty)
	assert.Len(t, got.Codes, 2)
}

func TestGetJSON_EmptyBody(t *testing.T) {
	srv := serve(t, http.StatusOK, "  \n")

	var got payload
	empty, err := GetJSON(context.Background(), srv.Client(), srv.URL, &got)
	require.NoError(t, err)
	assert.True(t, empty)
	assert.Empty(t, got.Codes)
}

func TestGetJSON_Malformed(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html>maintenance</html>`)

	var got payload
	_, err := GetJSON(context.Background(), srv.Client(), srv.URL, &got)
	require.Error(t, err)
	assert.True(t, codelist.IsMalformedResponse(err))
}

func TestGetJSON_NonSuccessStatus(t *testing.T) {
	srv := serve(t, http.StatusServiceUnavailable, `{"error":"down"}`)

	var got payload
	_, err := GetJSON(context.Background(), srv.Client(), srv.URL, &got)
	require.Error(t, err)
	assert.True(t, codelist.IsUpstreamUnavailable(err))
	assert.False(t, codelist.IsMalformedResponse(err))
}

func TestGetJSON_TransportFailure(t *testing.T) {
	srv := serve(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	var got payload
	_, err := GetJSON(context.Background(), http.DefaultClient, url, &got)
	require.Error(t, err)
	assert.True(t, codelist.IsUpstreamUnavailable(err))
}

func TestGetJSON_CancelledContext(t *testing.T) {
	srv := serve(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got payload
	_, err := GetJSON(ctx, srv.Client(), srv.URL, &got)
	require.Error(t, err)
	assert.True(t, codelist.IsUpstreamUnavailable(err))
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-codelists/codelist"
)

type funcProvider struct {
	id string
	fn func(language string, filters map[string]string) (*codelist.AppOptions, error)
}

func (p funcProvider) ID() string { return p.id }

func (p funcProvider) GetOptions(_ context.Context, language string, filters map[string]string) (*codelist.AppOptions, error) {
	return p.fn(language, filters)
}

func newTestServer(t *testing.T, providers ...codelist.Provider) *httptest.Server {
	t.Helper()

	registry, err := codelist.NewRegistry(providers...)
	require.NoError(t, err)

	srv := httptest.NewServer(newHandler(registry, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, dest any) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	return resp.StatusCode
}

func TestHandler_Options(t *testing.T) {
	var gotLanguage string
	var gotFilters map[string]string
	srv := newTestServer(t, funcProvider{id: "kjonn", fn: func(language string, filters map[string]string) (*codelist.AppOptions, error) {
		gotLanguage, gotFilters = language, filters
		return &codelist.AppOptions{
			Options:     []codelist.Option{{Value: "2", Label: "Kvinne"}},
			Parameters:  filters,
			IsCacheable: true,
		}, nil
	}})

	var opts codelist.AppOptions
	status := getJSON(t, srv.URL+"/codelists/kjonn?language=en&date=2023-01-01&level=1", &opts)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "en", gotLanguage)
	assert.Equal(t, map[string]string{"date": "2023-01-01", "level": "1"}, gotFilters)
	assert.Equal(t, []codelist.Option{{Value: "2", Label: "Kvinne"}}, opts.Options)
	assert.True(t, opts.IsCacheable)
}

func TestHandler_ListIDs(t *testing.T) {
	ok := func(string, map[string]string) (*codelist.AppOptions, error) { return &codelist.AppOptions{}, nil }
	srv := newTestServer(t, funcProvider{id: "yrker", fn: ok}, funcProvider{id: "land", fn: ok})

	var ids []string
	status := getJSON(t, srv.URL+"/codelists", &ids)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"land", "yrker"}, ids)
}

func TestHandler_ErrorStatus(t *testing.T) {
	failing := func(err error) funcProvider {
		return funcProvider{id: "p", fn: func(string, map[string]string) (*codelist.AppOptions, error) { return nil, err }}
	}

	tests := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{"unknown id", "/codelists/missing", nil, http.StatusNotFound, codelist.TextCodeUnknownProvider},
		{"invalid filter", "/codelists/p", codelist.InvalidFilterValue("date", "x", nil), http.StatusBadRequest, codelist.TextCodeInvalidFilterValue},
		{"upstream down", "/codelists/p", codelist.UpstreamUnavailable(nil, "http://upstream", 503), http.StatusBadGateway, codelist.TextCodeUpstreamUnavailable},
		{"malformed", "/codelists/p", codelist.MalformedResponse(errors.New("bad json"), "http://upstream"), http.StatusBadGateway, codelist.TextCodeMalformedResponse},
		{"other", "/codelists/p", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, failing(tt.err))

			var body errorResponse
			status := getJSON(t, srv.URL+tt.path, &body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestParseFilters(t *testing.T) {
	filters, err := parseFilters([]string{"parentCode=A", "date=2023-01-01", "parentCode=B", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"parentCode": "B", "date": "2023-01-01", "empty": ""}, filters)

	_, err = parseFilters([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseFilters([]string{"=x"})
	assert.Error(t, err)
}

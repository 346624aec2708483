// Package upstream performs the JSON GET requests issued by the codelist API
// clients and maps their failures onto the codelist error kinds.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/goliatone/go-codelists/codelist"
)

// AcceptHeader is sent with every request.
const AcceptHeader = "application/json;charset=utf-8"

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 32 << 20

// GetJSON issues a GET for url and decodes the body into dest.
//
// Transport errors and non-2xx statuses are UpstreamUnavailable. A body that
// is empty or only whitespace leaves dest untouched and reports empty=true.
// Any other body that fails to decode is MalformedResponse.
func GetJSON(ctx context.Context, client *http.Client, url string, dest any) (empty bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, codelist.UpstreamUnavailable(err, url, 0)
	}
	req.Header.Set("Accept", AcceptHeader)

	resp, err := client.Do(req)
	if err != nil {
		return false, codelist.UpstreamUnavailable(err, url, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return false, codelist.UpstreamUnavailable(nil, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, codelist.UpstreamUnavailable(err, url, resp.StatusCode)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return true, nil
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return false, codelist.MalformedResponse(err, url)
	}
	return false, nil
}

package codelist

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to the errors produced by this module.
const (
	TextCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	TextCodeMalformedResponse   = "MALFORMED_RESPONSE"
	TextCodeInvalidFilterValue  = "INVALID_FILTER_VALUE"
	TextCodeUnknownProvider     = "UNKNOWN_PROVIDER"
	TextCodeDuplicateProvider   = "DUPLICATE_PROVIDER"
)

// UpstreamUnavailable reports a transport failure or a non-success status
// from an external API. status is zero when no response was received.
func UpstreamUnavailable(source error, url string, status int) error {
	meta := map[string]any{"url": url}
	if status > 0 {
		meta["status"] = status
	}

	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(fmt.Sprintf("upstream returned status %d", status), goerrors.CategoryExternal)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryExternal, "upstream request failed")
	}

	err = err.WithTextCode(TextCodeUpstreamUnavailable).WithMetadata(meta)
	if status > 0 {
		err = err.WithCode(status)
	}
	return err
}

// MalformedResponse reports a response body that could not be decoded.
func MalformedResponse(source error, url string) error {
	return goerrors.Wrap(source, goerrors.CategoryExternal, "upstream response could not be decoded").
		WithTextCode(TextCodeMalformedResponse).
		WithMetadata(map[string]any{"url": url})
}

// InvalidFilterValue reports a filter value that could not be interpreted.
func InvalidFilterValue(name, value string, source error) error {
	msg := fmt.Sprintf("invalid value %q for filter %q", value, name)
	meta := map[string]any{"filter": name, "value": value}

	if source == nil {
		return goerrors.New(msg, goerrors.CategoryBadInput).
			WithTextCode(TextCodeInvalidFilterValue).
			WithMetadata(meta)
	}
	return goerrors.Wrap(source, goerrors.CategoryBadInput, msg).
		WithTextCode(TextCodeInvalidFilterValue).
		WithMetadata(meta)
}

// UnknownProvider reports a lookup for an id no provider is registered under.
func UnknownProvider(id string) error {
	return goerrors.New(fmt.Sprintf("no codelist provider registered with id %q", id), goerrors.CategoryNotFound).
		WithTextCode(TextCodeUnknownProvider).
		WithMetadata(map[string]any{"id": id})
}

// DuplicateProvider reports a second registration under an existing id.
func DuplicateProvider(id string) error {
	return goerrors.New(fmt.Sprintf("codelist provider %q already registered", id), goerrors.CategoryConflict).
		WithTextCode(TextCodeDuplicateProvider).
		WithMetadata(map[string]any{"id": id})
}

func IsUpstreamUnavailable(err error) bool { return hasTextCode(err, TextCodeUpstreamUnavailable) }
func IsMalformedResponse(err error) bool   { return hasTextCode(err, TextCodeMalformedResponse) }
func IsInvalidFilterValue(err error) bool  { return hasTextCode(err, TextCodeInvalidFilterValue) }
func IsUnknownProvider(err error) bool     { return hasTextCode(err, TextCodeUnknownProvider) }
func IsDuplicateProvider(err error) bool   { return hasTextCode(err, TextCodeDuplicateProvider) }

func hasTextCode(err error, code string) bool {
	var e *goerrors.Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.TextCode == code {
			return true
		}
		err = e.Source
	}
	return false
}

package ssb

import (
	"context"
	"time"

	"github.com/goliatone/go-codelists/codelist"
)

// Filter keys understood by ClassificationProvider.
const (
	FilterDate       = "date"
	FilterLevel      = "level"
	FilterVariant    = "variant"
	FilterParentCode = "parentCode"
)

// ClassificationProvider exposes one Klass classification as a codelist.
type ClassificationProvider struct {
	id               string
	classificationID int
	client           Client
	defaults         map[string]string
	now              func() time.Time
}

// ProviderOption configures a ClassificationProvider.
type ProviderOption func(*ClassificationProvider)

// WithClock sets the clock used when no date filter is given.
func WithClock(now func() time.Time) ProviderOption {
	return func(p *ClassificationProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewClassificationProvider creates a provider registered under id. defaults
// are copied; per-call filters override them key by key.
func NewClassificationProvider(id string, classificationID int, client Client, defaults map[string]string, opts ...ProviderOption) *ClassificationProvider {
	p := &ClassificationProvider{
		id:               id,
		classificationID: classificationID,
		client:           client,
		defaults:         codelist.MergeFilters(defaults, nil),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID implements codelist.Provider.
func (p *ClassificationProvider) ID() string {
	return p.id
}

// ClassificationID returns the Klass classification this provider reads.
func (p *ClassificationProvider) ClassificationID() int {
	return p.classificationID
}

// GetOptions implements codelist.Provider.
//
// The date filter must be yyyy-MM-dd. Codes are filtered on parentCode after
// the fetch since Klass has no server-side parent filter.
func (p *ClassificationProvider) GetOptions(ctx context.Context, language string, filters map[string]string) (*codelist.AppOptions, error) {
	merged := codelist.MergeFilters(p.defaults, filters)

	atDate, err := p.resolveDate(merged[FilterDate])
	if err != nil {
		return nil, err
	}

	codes, err := p.client.GetClassificationCodes(ctx, p.classificationID, language, atDate, merged[FilterLevel], merged[FilterVariant])
	if err != nil {
		return nil, err
	}

	return &codelist.AppOptions{
		Options:     toOptions(codes, merged[FilterParentCode]),
		Parameters:  merged,
		IsCacheable: true,
	}, nil
}

func (p *ClassificationProvider) resolveDate(value string) (time.Time, error) {
	if value == "" {
		return NormalizeDate(time.Time{}, p.now), nil
	}

	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, codelist.InvalidFilterValue(FilterDate, value, err)
	}
	return date, nil
}

func toOptions(codes *ClassificationCodes, parentCode string) []codelist.Option {
	options := []codelist.Option{}
	if codes == nil {
		return options
	}

	for _, code := range codes.Codes {
		if parentCode != "" && code.ParentCode != parentCode {
			continue
		}
		options = append(options, codelist.Option{
			Value:       code.Code,
			Label:       code.Name,
			Description: code.Notes,
		})
	}
	return options
}

var _ codelist.Provider = (*ClassificationProvider)(nil)

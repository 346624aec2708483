package adminunits

import (
	"context"

	"github.com/goliatone/go-codelists/codelist"
)

// Default provider ids and the filter understood by CommunesProvider.
const (
	CountiesProviderID = "fylker"
	CommunesProviderID = "kommuner"

	FilterCounty = "fylke"
)

// CountiesProvider lists the counties of Norway. Language is ignored.
type CountiesProvider struct {
	client Client
}

// NewCountiesProvider creates the provider registered as CountiesProviderID.
func NewCountiesProvider(client Client) *CountiesProvider {
	return &CountiesProvider{client: client}
}

// ID implements codelist.Provider.
func (p *CountiesProvider) ID() string { return CountiesProviderID }

// GetOptions implements codelist.Provider. Counties map number to value and
// name to label.
func (p *CountiesProvider) GetOptions(ctx context.Context, _ string, filters map[string]string) (*codelist.AppOptions, error) {
	counties, err := p.client.GetCounties(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]codelist.Option, 0, len(counties))
	for _, county := range counties {
		options = append(options, codelist.Option{Value: county.Number, Label: county.Name})
	}

	return &codelist.AppOptions{
		Options:     options,
		Parameters:  codelist.MergeFilters(nil, filters),
		IsCacheable: true,
	}, nil
}

// CommunesProvider lists communes, optionally restricted to the county given
// by the fylke filter. Language is ignored.
type CommunesProvider struct {
	client Client
}

// NewCommunesProvider creates the provider registered as CommunesProviderID.
func NewCommunesProvider(client Client) *CommunesProvider {
	return &CommunesProvider{client: client}
}

// ID implements codelist.Provider.
func (p *CommunesProvider) ID() string { return CommunesProviderID }

// GetOptions implements codelist.Provider. A non-empty fylke filter limits
// the result to that county.
func (p *CommunesProvider) GetOptions(ctx context.Context, _ string, filters map[string]string) (*codelist.AppOptions, error) {
	var (
		communes []Commune
		err      error
	)
	if county := filters[FilterCounty]; county != "" {
		communes, err = p.client.GetCountyCommunes(ctx, county)
	} else {
		communes, err = p.client.GetCommunes(ctx)
	}
	if err != nil {
		return nil, err
	}

	options := make([]codelist.Option, 0, len(communes))
	for _, commune := range communes {
		options = append(options, codelist.Option{Value: commune.Number, Label: commune.Name})
	}

	return &codelist.AppOptions{
		Options:     options,
		Parameters:  codelist.MergeFilters(nil, filters),
		IsCacheable: true,
	}, nil
}

var (
	_ codelist.Provider = (*CountiesProvider)(nil)
	_ codelist.Provider = (*CommunesProvider)(nil)
)

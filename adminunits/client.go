package adminunits

import "context"

// DefaultBaseAPIURL is the Kartverket kommuneinfo endpoint.
const DefaultBaseAPIURL = "https://ws.geonorge.no/kommuneinfo/v1/"

// Client reads Norwegian counties (fylker) and communes (kommuner).
type Client interface {
	GetCounties(ctx context.Context) ([]County, error)
	GetCommunes(ctx context.Context) ([]Commune, error)
	// GetCountyCommunes returns the communes of one county.
	GetCountyCommunes(ctx context.Context, countyNumber string) ([]Commune, error)
}

// County is a Norwegian county. Communes is only populated by
// GetCountyCommunes.
type County struct {
	Number   string    `json:"fylkesnummer"`
	Name     string    `json:"fylkesnavn"`
	Communes []Commune `json:"kommuner,omitempty"`
}

// Commune is a Norwegian commune.
type Commune struct {
	Number string `json:"kommunenummer"`
	Name   string `json:"kommunenavnNorsk"`
}

// Settings configures the HTTP client.
type Settings struct {
	BaseAPIURL string `mapstructure:"baseapiurl"`
}

// DefaultSettings returns Settings pointing at the public API.
func DefaultSettings() Settings {
	return Settings{BaseAPIURL: DefaultBaseAPIURL}
}

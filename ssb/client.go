package ssb

import (
	"context"
	"time"
)

// DefaultBaseAPIURL is the SSB Klass classifications endpoint.
const DefaultBaseAPIURL = "https://data.ssb.no/api/klass/v1/classifications/"

// Languages accepted by the Klass API. DefaultLanguage is used for any other value.
const (
	LanguageBokmal  = "nb"
	LanguageNynorsk = "nn"
	LanguageEnglish = "en"

	DefaultLanguage = LanguageBokmal
)

// Client gets classification codes from SSB.
type Client interface {
	// GetClassificationCodes returns the codes of classificationID valid at
	// atDate. A zero atDate means today. An empty level returns all levels and
	// an empty variant returns the classification itself.
	GetClassificationCodes(ctx context.Context, classificationID int, language string, atDate time.Time, level, variant string) (*ClassificationCodes, error)
}

// ClassificationCodes is the Klass response for one request. Values returned
// by a cached client are shared and must not be modified.
type ClassificationCodes struct {
	Codes []ClassificationCode `json:"codes"`
}

// ClassificationCode is one entry of a classification.
type ClassificationCode struct {
	Code             string `json:"code"`
	ParentCode       string `json:"parentCode"`
	Level            string `json:"level"`
	Name             string `json:"name"`
	ShortName        string `json:"shortName"`
	PresentationName string `json:"presentationName"`
	ValidFrom        string `json:"validFrom"`
	ValidTo          string `json:"validTo"`
	Notes            string `json:"notes"`
}

// Settings configures the Klass HTTP client.
type Settings struct {
	BaseAPIURL string `mapstructure:"baseapiurl"`
}

// DefaultSettings returns Settings pointing at the public Klass API.
func DefaultSettings() Settings {
	return Settings{BaseAPIURL: DefaultBaseAPIURL}
}

// NormalizeLanguage maps language onto one of the languages Klass supports.
func NormalizeLanguage(language string) string {
	switch language {
	case LanguageBokmal, LanguageNynorsk, LanguageEnglish:
		return language
	default:
		return DefaultLanguage
	}
}

// NormalizeDate truncates date to a calendar day. A zero date becomes the
// current day according to now.
func NormalizeDate(date time.Time, now func() time.Time) time.Time {
	if date.IsZero() {
		date = now()
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

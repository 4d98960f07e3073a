package covid

import (
	"fmt"
	"net/http"
)

// ProviderID names one of the supported upstream data sources.
type ProviderID string

const (
	CovidTracking ProviderID = "COVID_Tracking"
	JHU           ProviderID = "JHU"
)

// Descriptor is the static metadata of a data source.
type Descriptor struct {
	ID        ProviderID
	Name      string
	Abbr      string
	DataURI   string
	CreditURI string
}

var descriptors = map[ProviderID]Descriptor{
	CovidTracking: {
		ID:        CovidTracking,
		Name:      "COVID Tracking Project",
		Abbr:      "ctp",
		DataURI:   "https://covidtracking.com/api/v1",
		CreditURI: "https://covidtracking.com/",
	},
	JHU: {
		ID:        JHU,
		Name:      "JHU CSSE COVID-19 Data Repository",
		Abbr:      "jhu",
		DataURI:   "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series",
		CreditURI: "https://coronavirus.jhu.edu/",
	},
}

// LookupDescriptor returns the metadata of a known provider.
func LookupDescriptor(id ProviderID) (Descriptor, error) {
	d, found := descriptors[id]
	if !found {
		return Descriptor{}, fmt.Errorf("unknown data provider %q", id)
	}
	return d, nil
}

// Provider fetches the recent daily series of a state or a country from one
// upstream. Unit names follow the upstream's own conventions and are not
// validated: an unknown unit yields an upstream error.
type Provider interface {
	Descriptor() Descriptor
	FetchState(state string) (Series, error)
	FetchCountry(country string) (Series, error)
}

var constructors = map[ProviderID]func(Descriptor) Provider{
	CovidTracking: func(d Descriptor) Provider { return &ctpProvider{desc: d} },
	JHU:           func(d Descriptor) Provider { return &jhuProvider{desc: d} },
}

// NewProvider builds the provider variant matching d.ID.
func NewProvider(d Descriptor) (Provider, error) {
	newFn, found := constructors[d.ID]
	if !found {
		return nil, fmt.Errorf("no provider implementation for %q", d.ID)
	}
	return newFn(d), nil
}

// FetchError reports a failed retrieval: the upstream (or transport) status
// code and a short message. Status 0 means no response was received.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func notFound(format string, args ...interface{}) *FetchError {
	return &FetchError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

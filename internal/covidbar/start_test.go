package covidbar

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyalavrinov/covidbar/internal/covidbar/covid"
)

type fakeProvider struct {
	data  map[string]covid.Series
	errs  map[string]error
	calls []string
}

var _ covid.Provider = &fakeProvider{}

func (p *fakeProvider) Descriptor() covid.Descriptor {
	return covid.Descriptor{Name: "Fake Source", CreditURI: "https://fake.example/"}
}

func (p *fakeProvider) fetch(kind, unit string) (covid.Series, error) {
	p.calls = append(p.calls, kind+":"+unit)
	if err, found := p.errs[unit]; found {
		return nil, err
	}
	return p.data[unit], nil
}

func (p *fakeProvider) FetchState(state string) (covid.Series, error) {
	return p.fetch("state", state)
}

func (p *fakeProvider) FetchCountry(country string) (covid.Series, error) {
	return p.fetch("country", country)
}

func oneDay(date string, deaths, cases int) covid.Series {
	return covid.Series{date: {Date: date, DeathIncrease: deaths, CaseIncrease: cases}}
}

func TestReporterIsolatesFailures(t *testing.T) {
	p := &fakeProvider{
		data: map[string]covid.Series{
			"US": oneDay("2020-04-29", 10, 100),
			"WA": oneDay("2020-04-29", 1, 10),
			"MA": oneDay("2020-04-29", 2, 20),
		},
		errs: map[string]error{
			"FR": &covid.FetchError{StatusCode: http.StatusNotFound, Message: "only US | sorry"},
			"XX": &covid.FetchError{StatusCode: http.StatusServiceUnavailable},
			"YY": errors.New("csv has no \"date\" column"),
		},
	}
	var out bytes.Buffer
	r := &reporter{out: &out, provider: p, formatter: covid.Formatter{}}
	require.NoError(t, r.run([]string{"US", "FR"}, []string{"WA", "XX", "YY", "MA", "ZZ"}))

	assert.Equal(t, []string{"country:US", "country:FR", "state:WA", "state:XX", "state:YY", "state:MA", "state:ZZ"}, p.calls)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "| templateImage="))
	assert.Equal(t, "---", lines[1])
	assert.Equal(t, "Data: Fake Source | href='https://fake.example/'", lines[len(lines)-1])

	var with503 []string
	for _, l := range lines {
		if strings.Contains(l, "503") {
			with503 = append(with503, l)
		}
	}
	assert.Equal(t, []string{"XX API error: 503 | color=darkred"}, with503)

	assert.Contains(t, lines, "FR API error: 404: only US / sorry | color=darkred")
	assert.Contains(t, lines, `YY data error: csv has no "date" column | color=darkred`)
	assert.Contains(t, lines, "ZZ API error: 404: no data for ZZ | color=darkred")
	assert.Contains(t, lines, "US :arrow_upper_right: | color=darkred")
	assert.Contains(t, lines, "WA :arrow_upper_right: | color=darkred")
	assert.Contains(t, lines, "MA :arrow_upper_right: | color=darkred")

	// header 2 + US 5 + FR 1 + WA 5 + XX 1 + YY 1 + MA 5 + ZZ 1 + credit 1
	assert.Len(t, lines, 22)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestReporterWriteError(t *testing.T) {
	r := &reporter{out: failingWriter{}, provider: &fakeProvider{}, formatter: covid.Formatter{}}
	err := r.run(nil, []string{"WA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed pipe")
}

func ctpServer(t *testing.T) *httptest.Server {
	var csv strings.Builder
	csv.WriteString("date,deathIncrease,positiveIncrease\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&csv, "202004%02d,%d,%d\n", 29-i, i+1, 10*(i+1))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/states/WA/daily.csv", "/us/daily.csv":
			_, _ = w.Write([]byte(csv.String()))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStartEndToEnd(t *testing.T) {
	srv := ctpServer(t)
	cfg, err := NewConfig()
	require.NoError(t, err)
	cfg.Provider.DataURI = srv.URL
	cfg.Countries = []string{"US", "FR"}
	cfg.States = []string{"MA", "WA"}

	var out bytes.Buffer
	require.NoError(t, Start(cfg, &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2+7+1+1+7+1)
	assert.Equal(t, "US :arrow_lower_right: | color=green", lines[2])
	assert.Equal(t, "--New Deaths on 2020-04-29: 1 | color=green", lines[3])
	assert.Equal(t, "--3 Day Average: 13.00 | color=black", lines[4])
	assert.Equal(t, "--14 Day Graph: █▇▆▆▅▅▄▄▃▃▂▂▁▁ | color=black", lines[5])
	assert.Equal(t, "FR API error: 404: COVID Tracking Project only has country data for US | color=darkred", lines[9])
	assert.Equal(t, "MA API error: 503: Service Unavailable | color=darkred", lines[10])
	assert.Equal(t, "WA :arrow_lower_right: | color=green", lines[11])
	assert.Equal(t, "Data: COVID Tracking Project | href='https://covidtracking.com/'", lines[18])
}

func TestStartWithoutSparklines(t *testing.T) {
	srv := ctpServer(t)
	cfg, err := NewConfig()
	require.NoError(t, err)
	cfg.Provider.DataURI = srv.URL
	cfg.Sparklines = false
	cfg.Countries = nil
	cfg.States = []string{"WA"}

	var out bytes.Buffer
	require.NoError(t, Start(cfg, &out))
	assert.NotContains(t, out.String(), "Graph")
	assert.Len(t, strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"), 2+5+1)
}

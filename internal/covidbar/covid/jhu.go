package covid

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	jhuColState   = "Province_State"
	jhuColCountry = "Country/Region"

	jhuScopeUS     = "US"
	jhuScopeGlobal = "global"

	jhuDeaths    = "deaths"
	jhuConfirmed = "confirmed"

	jhuDateLayout = "1/2/06"
)

// jhuProvider reads the JHU CSSE wide time series: one row per county
// (US files) or province (global files) and one column per date holding
// cumulative totals.
type jhuProvider struct {
	desc Descriptor
}

var _ Provider = &jhuProvider{}

func (p *jhuProvider) Descriptor() Descriptor {
	return p.desc
}

func (p *jhuProvider) FetchState(state string) (Series, error) {
	return p.fetch(state, jhuScopeUS, jhuColState)
}

func (p *jhuProvider) FetchCountry(country string) (Series, error) {
	return p.fetch(country, jhuScopeGlobal, jhuColCountry)
}

func (p *jhuProvider) fileURL(kind, scope string) string {
	return fmt.Sprintf("%s/time_series_covid19_%s_%s.csv", p.desc.DataURI, kind, scope)
}

func (p *jhuProvider) fetch(unit, scope, column string) (Series, error) {
	deaths, err := p.increases(p.fileURL(jhuDeaths, scope), column, unit)
	if err != nil {
		return nil, err
	}
	cases, err := p.increases(p.fileURL(jhuConfirmed, scope), column, unit)
	if err != nil {
		return nil, err
	}

	series := make(Series, windowDays)
	for date, d := range deaths {
		c, found := cases[date]
		if !found {
			continue
		}
		series[date] = Day{Date: date, DeathIncrease: d, CaseIncrease: c}
	}
	if len(series) == 0 {
		return nil, notFound("no data for %s", unit)
	}

	log.WithFields(log.Fields{"unit": unit, "days": len(series)}).Debug("Read time series data")
	return series, nil
}

type jhuTotal struct {
	date  string
	total int
}

// increases returns the daily increases of the last windowDays dates, derived
// from the cumulative totals of every row whose column matches unit.
func (p *jhuProvider) increases(url, column, unit string) (map[string]int, error) {
	body, err := download(url)
	if err != nil {
		return nil, err
	}
	totals, err := jhuTotals(body, column, unit)
	if err != nil {
		return nil, fmt.Errorf("%s data for %s: %w", p.desc.Abbr, unit, err)
	}
	if totals == nil {
		return nil, notFound("%s not found in %s", unit, url[strings.LastIndexByte(url, '/')+1:])
	}

	result := make(map[string]int, len(totals))
	for i := 1; i < len(totals); i++ {
		result[totals[i].date] = totals[i].total - totals[i-1].total
	}
	return result, nil
}

// jhuTotals sums the last windowDays+1 date columns over the matching rows.
// It returns nil when no row matches.
func jhuTotals(body []byte, column, unit string) ([]jhuTotal, error) {
	records, err := readRecords(body)
	if err != nil {
		return nil, err
	}

	header := records[0]
	col := columnIndex(header, column)
	if col < 0 {
		return nil, fmt.Errorf("csv has no %q column", column)
	}

	dateCols := make([]int, 0, len(header))
	totals := make([]jhuTotal, 0, len(header))
	for i, h := range header {
		d, err := time.Parse(jhuDateLayout, strings.TrimSpace(h))
		if err != nil {
			continue
		}
		dateCols = append(dateCols, i)
		totals = append(totals, jhuTotal{date: d.Format(dateLayout)})
	}
	if len(dateCols) > windowDays+1 {
		dateCols = dateCols[len(dateCols)-windowDays-1:]
		totals = totals[len(totals)-windowDays-1:]
	}

	matched := false
	for _, rec := range records[1:] {
		if col >= len(rec) || strings.TrimSpace(rec[col]) != unit {
			continue
		}
		matched = true
		for i, dc := range dateCols {
			if dc >= len(rec) {
				continue
			}
			v, err := atoi(rec[dc])
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", unit, header[dc], err)
			}
			totals[i].total += v
		}
	}
	if !matched {
		return nil, nil
	}
	return totals, nil
}

package covid

import (
	"fmt"

	"github.com/ilyalavrinov/covidbar/pkg/bitbar"
)

const (
	colorGood    = "green"
	colorBad     = "darkred"
	colorNeutral = "black"

	emojiImproving = ":arrow_lower_right:"
	emojiWorsening = ":arrow_upper_right:"

	averageDays = 3
)

// AverageMode selects which days of the window the 3 day average covers.
type AverageMode int

const (
	// AverageOldest averages the three earliest days of the window. This is
	// how the widget has always reported, so it stays the default.
	AverageOldest AverageMode = iota
	// AverageRecent averages the three latest days.
	AverageRecent
)

// Formatter renders a series as a menu block: a headline with the overall
// trend followed by the death and case details.
type Formatter struct {
	Chart   Sparkliner
	Average AverageMode
}

type metric struct {
	name    string
	byDay   []int
	last    int
	average float64
	color   string
}

func (f Formatter) Format(s Series, label string) string {
	days := s.Days()

	deaths := metric{name: "Deaths", byDay: make([]int, 0, len(days))}
	cases := metric{name: "Cases", byDay: make([]int, 0, len(days))}
	lastDate := ""
	for _, d := range days {
		deaths.byDay = append(deaths.byDay, d.DeathIncrease)
		cases.byDay = append(cases.byDay, d.CaseIncrease)

		deaths.last = d.DeathIncrease
		cases.last = d.CaseIncrease
		lastDate = d.Date
	}

	deaths.average = f.average(deaths.byDay)
	cases.average = f.average(cases.byDay)
	deaths.color = trendColor(deaths.average, deaths.last)
	cases.color = trendColor(cases.average, cases.last)

	headColor, emoji := colorGood, emojiImproving
	if deaths.color == colorBad || cases.color == colorBad {
		headColor, emoji = colorBad, emojiWorsening
	}

	lines := []bitbar.Line{bitbar.NewLine(fmt.Sprintf("%s %s", label, emoji), bitbar.Color(headColor))}
	lines = append(lines, f.metricLines(deaths, lastDate)...)
	lines = append(lines, f.metricLines(cases, lastDate)...)
	return bitbar.Join(lines)
}

func (f Formatter) metricLines(m metric, lastDate string) []bitbar.Line {
	lines := []bitbar.Line{
		bitbar.NewLine(fmt.Sprintf("New %s on %s: %d", m.name, lastDate, m.last), bitbar.Color(m.color)).Sub(),
		bitbar.NewLine(fmt.Sprintf("3 Day Average: %.2f", m.average), bitbar.Color(colorNeutral)).Sub(),
	}
	if f.Chart == nil {
		return lines
	}
	if chart := f.Chart.Sparkline(m.byDay); chart != "" {
		lines = append(lines, bitbar.NewLine(fmt.Sprintf("%d Day Graph: %s", windowDays, chart), bitbar.Color(colorNeutral)).Sub())
	}
	return lines
}

// average never divides by more than the number of available days.
func (f Formatter) average(byDay []int) float64 {
	n := averageDays
	if len(byDay) < n {
		n = len(byDay)
	}
	if n == 0 {
		return 0
	}

	window := byDay[:n]
	if f.Average == AverageRecent {
		window = byDay[len(byDay)-n:]
	}
	sum := 0
	for _, v := range window {
		sum += v
	}
	return float64(sum) / float64(n)
}

// trendColor reports improvement when the average is above the latest value.
func trendColor(average float64, last int) string {
	if average > float64(last) {
		return colorGood
	}
	return colorBad
}

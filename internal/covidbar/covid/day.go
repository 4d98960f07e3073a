package covid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// windowDays is how many of the most recent reported days a series covers.
const windowDays = 14

const dateLayout = "2006-01-02"

// Day holds the statistics reported for one calendar day. Increases may be
// negative when the upstream corrects earlier reports.
type Day struct {
	Date          string
	DeathIncrease int
	CaseIncrease  int
}

// Series maps a YYYY-MM-DD date to the statistics of that day.
type Series map[string]Day

// Days returns the days of the series ordered by ascending date.
func (s Series) Days() []Day {
	days := make([]Day, 0, len(s))
	for _, d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// normalizeCompactDate turns "20200429" into "2020-04-29".
func normalizeCompactDate(s string) (string, error) {
	d, err := time.Parse("20060102", strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid compact date %q: %w", s, err)
	}
	return d.Format(dateLayout), nil
}

// atoi treats blank cells as zero; upstream files leave days without reports empty.
func atoi(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

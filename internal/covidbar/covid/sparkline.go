package covid

// Sparkliner renders a sequence of values as a compact one-line chart.
// An empty result means there is nothing to show.
type Sparkliner interface {
	Sparkline(values []int) string
}

var bars = []rune("▁▂▃▄▅▆▇█")

// Bars draws one block character per value, scaled between the smallest and
// the largest value. Negative values are drawn as zero.
type Bars struct{}

func (Bars) Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}

	clamped := make([]int, len(values))
	lo, hi := 0, 0
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		clamped[i] = v
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}

	chart := make([]rune, len(clamped))
	divisions := len(bars) - 1
	for i, v := range clamped {
		if hi == lo {
			chart[i] = bars[0]
			continue
		}
		chart[i] = bars[divisions*(v-lo)/(hi-lo)]
	}
	return string(chart)
}

// NopSparkline stands in when charts are switched off.
type NopSparkline struct{}

func (NopSparkline) Sparkline([]int) string {
	return ""
}

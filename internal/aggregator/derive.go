package aggregator

import "math"

// ratio divides num by den. It returns nil for a zero denominator or a
// non-finite result so that callers omit the metric instead of emitting NaN.
func ratio(num, den float64) *float64 {
	if den == 0 || math.IsNaN(den) {
		return nil
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func percent(num, den float64) *float64 {
	v := ratio(num, den)
	if v == nil {
		return nil
	}
	pct := *v * 100
	return &pct
}

// CompletionPct is completions / attempts x 100.
func CompletionPct(completions, attempts float64) *float64 {
	return percent(completions, attempts)
}

// YardsPerAttempt is pass yards / attempts.
func YardsPerAttempt(yards, attempts float64) *float64 {
	return ratio(yards, attempts)
}

// YardsPerCarry is rush yards / rush attempts.
func YardsPerCarry(yards, carries float64) *float64 {
	return ratio(yards, carries)
}

// CatchRate is receptions / targets x 100.
func CatchRate(receptions, targets float64) *float64 {
	return percent(receptions, targets)
}

// YardsPerReception is receiving yards / receptions, 0 when there are none.
func YardsPerReception(yards, receptions float64) float64 {
	if v := ratio(yards, receptions); v != nil {
		return *v
	}
	return 0
}

// TDINTRatio is touchdowns / interceptions. With no interceptions the ratio is
// the raw touchdown count.
func TDINTRatio(touchdowns, interceptions float64) float64 {
	if interceptions > 0 {
		return touchdowns / interceptions
	}
	return touchdowns
}

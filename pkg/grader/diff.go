package grader

import "hifi-bench/pkg/models"

// Class tags one metric comparison.
type Class int

const (
	NotComparable Class = iota
	Improvement
	Regression
	Neutral
)

// Mode selects how the delta between baseline and candidate is computed.
type Mode int

const (
	// RelativePercent is (cand-base)/base*100 and needs a positive baseline.
	RelativePercent Mode = iota
	// AbsoluteDelta is cand-base with no positivity requirement.
	AbsoluteDelta
)

// Direction states which sign of delta counts as better for a metric.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Diff is a classified delta. Delta is meaningful only when Class is not
// NotComparable.
type Diff struct {
	Class Class
	Delta float64
}

// Compare computes and classifies the delta between a baseline and candidate
// metric. Deltas strictly beyond threshold in the better direction are
// improvements, strictly beyond it the other way regressions, anything in
// between (threshold itself included) neutral. A zero threshold therefore
// classifies any nonzero delta and leaves only an exact zero neutral.
func Compare(base, cand models.Metric, mode Mode, dir Direction, threshold float64) Diff {
	if !base.Valid || !cand.Valid {
		return Diff{Class: NotComparable}
	}

	var delta float64
	switch mode {
	case RelativePercent:
		if base.Value <= 0 {
			return Diff{Class: NotComparable}
		}
		delta = (cand.Value - base.Value) / base.Value * 100
	case AbsoluteDelta:
		delta = cand.Value - base.Value
	}

	better := delta
	if dir == LowerIsBetter {
		better = -delta
	}
	switch {
	case better > threshold:
		return Diff{Class: Improvement, Delta: delta}
	case better < -threshold:
		return Diff{Class: Regression, Delta: delta}
	default:
		return Diff{Class: Neutral, Delta: delta}
	}
}

// Per-metric significance thresholds, matching the grading conventions the
// hifi-wifi A/B workflow has always used.
const (
	ThresholdTCP     = 5.0  // relative %, higher is better
	ThresholdJitter  = 10.0 // relative %, lower is better
	ThresholdLatency = 5.0  // relative %, lower is better
	ThresholdUDPLoss = 0.0  // absolute percentage points, lower is better
)

// CompareSides runs every per-metric comparison between the two sides.
// Latency is only comparable when neither side's hop trace timed out.
func CompareSides(stock, hifi models.SideMetrics) ComparisonDiffs {
	var d ComparisonDiffs
	d.TCP = Compare(stock.TCPMbps, hifi.TCPMbps, RelativePercent, HigherIsBetter, ThresholdTCP)
	d.Jitter = Compare(stock.JitterMs, hifi.JitterMs, RelativePercent, LowerIsBetter, ThresholdJitter)
	d.UDPLoss = Compare(stock.UDPLoss, hifi.UDPLoss, AbsoluteDelta, LowerIsBetter, ThresholdUDPLoss)

	if timedOut(stock.MTRLoss) || timedOut(hifi.MTRLoss) {
		d.Latency = Diff{Class: NotComparable}
	} else {
		d.Latency = Compare(stock.LatencyMs, hifi.LatencyMs, RelativePercent, LowerIsBetter, ThresholdLatency)
	}
	return d
}

// ComparisonDiffs collects the classified deltas for every displayed metric.
type ComparisonDiffs struct {
	TCP     Diff
	Jitter  Diff
	UDPLoss Diff
	Latency Diff
}

func timedOut(mtrLoss models.Metric) bool {
	return mtrLoss.Valid && mtrLoss.Value == 100.0
}

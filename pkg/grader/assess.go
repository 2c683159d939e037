package grader

import "hifi-bench/pkg/models"

// Verdict is the overall call for one comparison run.
type Verdict int

const (
	VerdictNeutral Verdict = iota
	VerdictImprovement
	VerdictRegression
	VerdictNoData
)

func (v Verdict) String() string {
	switch v {
	case VerdictImprovement:
		return "IMPROVEMENT"
	case VerdictRegression:
		return "REGRESSION"
	case VerdictNoData:
		return "NO_DATA"
	default:
		return "NO_SIGNIFICANT_CHANGE"
	}
}

// Assess folds the per-metric classifications into one verdict. Only TCP
// throughput is scored; jitter, loss and latency are displayed but carry no
// weight. When neither side produced any throughput or latency measurement
// at all, the run collected nothing and the verdict says so instead of
// pretending "no change".
func Assess(stock, hifi models.SideMetrics, diffs ComparisonDiffs) Verdict {
	if !stock.TCPMbps.Valid && !hifi.TCPMbps.Valid &&
		!stock.LatencyMs.Valid && !hifi.LatencyMs.Valid {
		return VerdictNoData
	}
	switch diffs.TCP.Class {
	case Improvement:
		return VerdictImprovement
	case Regression:
		return VerdictRegression
	default:
		return VerdictNeutral
	}
}

package grader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hifi-bench/pkg/models"
)

func TestCompare(t *testing.T) {
	valid := models.Measured
	absent := models.Metric{}

	tests := []struct {
		name      string
		base      models.Metric
		cand      models.Metric
		mode      Mode
		dir       Direction
		threshold float64
		class     Class
		delta     float64
	}{
		{"absent baseline", absent, valid(10), RelativePercent, HigherIsBetter, 5, NotComparable, 0},
		{"absent candidate", valid(10), absent, RelativePercent, HigherIsBetter, 5, NotComparable, 0},
		{"both absent", absent, absent, AbsoluteDelta, LowerIsBetter, 0, NotComparable, 0},
		{"zero baseline relative", valid(0), valid(50), RelativePercent, HigherIsBetter, 5, NotComparable, 0},
		{"negative baseline relative", valid(-1), valid(50), RelativePercent, HigherIsBetter, 5, NotComparable, 0},
		{"throughput gain", valid(100), valid(120), RelativePercent, HigherIsBetter, 5, Improvement, 20},
		{"throughput drop", valid(100), valid(80), RelativePercent, HigherIsBetter, 5, Regression, -20},
		{"exactly threshold is neutral", valid(100), valid(105), RelativePercent, HigherIsBetter, 5, Neutral, 5},
		{"exactly negative threshold is neutral", valid(100), valid(95), RelativePercent, HigherIsBetter, 5, Neutral, -5},
		{"jitter improvement is a drop", valid(10), valid(8), RelativePercent, LowerIsBetter, 10, Improvement, -20},
		{"jitter regression is a rise", valid(10), valid(12), RelativePercent, LowerIsBetter, 10, Regression, 20},
		{"small jitter change is neutral", valid(10), valid(10.5), RelativePercent, LowerIsBetter, 10, Neutral, 5},
		{"loss any drop improves", valid(1.0), valid(0.5), AbsoluteDelta, LowerIsBetter, 0, Improvement, -0.5},
		{"loss any rise regresses", valid(0), valid(0.1), AbsoluteDelta, LowerIsBetter, 0, Regression, 0.1},
		{"loss unchanged is neutral", valid(0.5), valid(0.5), AbsoluteDelta, LowerIsBetter, 0, Neutral, 0},
		{"absolute mode allows zero baseline", valid(0), valid(0), AbsoluteDelta, LowerIsBetter, 0, Neutral, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compare(tt.base, tt.cand, tt.mode, tt.dir, tt.threshold)
			assert.Equal(t, tt.class, d.Class)
			if tt.class != NotComparable {
				assert.InDelta(t, tt.delta, d.Delta, 1e-9)
			}
		})
	}
}

func TestCompareSides(t *testing.T) {
	stock := models.SideMetrics{
		TCPMbps:   models.Measured(100),
		JitterMs:  models.Measured(2),
		UDPLoss:   models.Measured(0.5),
		LatencyMs: models.Measured(20),
		MTRLoss:   models.Measured(0),
	}
	hifi := models.SideMetrics{
		TCPMbps:   models.Measured(120),
		JitterMs:  models.Measured(1.5),
		UDPLoss:   models.Measured(0.2),
		LatencyMs: models.Measured(18),
		MTRLoss:   models.Measured(0),
	}

	d := CompareSides(stock, hifi)
	assert.Equal(t, Improvement, d.TCP.Class)
	assert.InDelta(t, 20.0, d.TCP.Delta, 1e-9)
	assert.Equal(t, Improvement, d.Jitter.Class)
	assert.Equal(t, Improvement, d.UDPLoss.Class)
	assert.Equal(t, Improvement, d.Latency.Class)

	t.Run("timeout excludes latency diff", func(t *testing.T) {
		blocked := hifi
		blocked.MTRLoss = models.Measured(100)
		d := CompareSides(stock, blocked)
		assert.Equal(t, NotComparable, d.Latency.Class)
		// other metrics unaffected
		assert.Equal(t, Improvement, d.TCP.Class)
	})

	t.Run("baseline timeout also excludes", func(t *testing.T) {
		blocked := stock
		blocked.MTRLoss = models.Measured(100)
		d := CompareSides(blocked, hifi)
		assert.Equal(t, NotComparable, d.Latency.Class)
	})
}

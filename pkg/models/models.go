package models

import "encoding/json"

// Metric is an optional measurement. Valid is false when the source document
// was missing, unparsable, errored, or lacked the required field.
type Metric struct {
	Value float64
	Valid bool
}

func Measured(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// MarshalJSON renders an invalid metric as null so published payloads keep
// the "absent" distinction instead of a fake zero.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Measured(v)
	return nil
}

// SideMetrics holds everything extracted from one result directory.
type SideMetrics struct {
	TCPMbps   Metric `json:"tcp_mbps"`
	JitterMs  Metric `json:"udp_jitter_ms"`
	UDPLoss   Metric `json:"udp_loss_pct"`
	LatencyMs Metric `json:"mtr_latency_ms"`
	MTRLoss   Metric `json:"mtr_loss_pct"`
}

// Comparison is the structured payload pushed to a gist alongside the
// rendered text report.
type Comparison struct {
	Stock   SideMetrics `json:"stock"`
	HiFi    SideMetrics `json:"hifi"`
	Verdict string      `json:"verdict"`
}

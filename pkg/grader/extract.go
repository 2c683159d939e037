package grader

import (
	"path/filepath"

	"hifi-bench/pkg/models"
)

// Fixed result filenames inside each side directory. The collector writes
// them; the grader reads them. A missing file is tolerated as absent data.
const (
	FileTCP = "iperf_tcp.json"
	FileUDP = "iperf_udp.json"
	FileMTR = "mtr_latency.json"
)

// ExtractTCP pulls TCP throughput in Mbps from an iperf3 JSON document.
func ExtractTCP(doc Document) models.Metric {
	bps, ok := doc.Float("end", "sum_received", "bits_per_second")
	if !ok {
		return models.Metric{}
	}
	return models.Measured(bps / 1e6)
}

// ExtractUDP pulls jitter (ms) and packet loss (%) from an iperf3 UDP
// document. A top-level "error" key means iperf itself failed and overrides
// any partial stats. Within an existing sum block, a field that is simply
// omitted counts as 0.0; a field with a non-numeric value invalidates just
// that metric.
func ExtractUDP(doc Document) (jitter, loss models.Metric) {
	if doc == nil || doc.Has("error") {
		return models.Metric{}, models.Metric{}
	}
	sum, ok := doc.Map("end", "sum")
	if !ok {
		return models.Metric{}, models.Metric{}
	}
	return numField(sum, "jitter_ms"), numField(sum, "lost_percent")
}

// numField reads one numeric field from a block that is known to exist:
// absent keys default to 0.0, wrong-typed values invalidate the metric.
func numField(block map[string]interface{}, key string) models.Metric {
	v, ok := block[key]
	if !ok {
		return models.Measured(0.0)
	}
	f, ok := asFloat(v)
	if !ok {
		return models.Metric{}
	}
	return models.Measured(f)
}

// ExtractMTR pulls the destination hop's average latency (ms) and packet
// loss (%) from an mtr JSON document. The last hub is the destination; a
// Loss% of exactly 100 means it never answered, which the renderer shows as
// a timeout while the raw latency value is still carried through.
func ExtractMTR(doc Document) (latency, loss models.Metric) {
	hubs, ok := doc.List("report", "hubs")
	if !ok || len(hubs) == 0 {
		return models.Metric{}, models.Metric{}
	}
	last, ok := hubs[len(hubs)-1].(map[string]interface{})
	if !ok {
		return models.Metric{}, models.Metric{}
	}
	return numField(last, "Avg"), numField(last, "Loss%")
}

// ReadSide loads the three result files from one directory and extracts all
// metrics. Structural anomalies degrade to invalid metrics, never errors.
func ReadSide(dir string) models.SideMetrics {
	var side models.SideMetrics
	side.TCPMbps = ExtractTCP(LoadDocument(filepath.Join(dir, FileTCP)))
	side.JitterMs, side.UDPLoss = ExtractUDP(LoadDocument(filepath.Join(dir, FileUDP)))
	side.LatencyMs, side.MTRLoss = ExtractMTR(LoadDocument(filepath.Join(dir, FileMTR)))
	return side
}

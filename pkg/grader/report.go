package grader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"hifi-bench/pkg/models"
)

const (
	diffPlaceholder = "    --    "
	timeoutCell     = "   Timeout  "
	ruleWidth       = 75
)

// Report bundles everything the renderer and publishers need for one run.
type Report struct {
	StockLabel string
	HiFiLabel  string
	Stock      models.SideMetrics
	HiFi       models.SideMetrics
	Diffs      ComparisonDiffs
	Verdict    Verdict
}

// NewReport extracts, diffs and assesses the two result directories.
func NewReport(stockDir, hifiDir string) Report {
	stock := ReadSide(stockDir)
	hifi := ReadSide(hifiDir)
	diffs := CompareSides(stock, hifi)
	return Report{
		StockLabel: filepath.Base(stockDir),
		HiFiLabel:  filepath.Base(hifiDir),
		Stock:      stock,
		HiFi:       hifi,
		Diffs:      diffs,
		Verdict:    Assess(stock, hifi, diffs),
	}
}

// styler applies ANSI colors, or nothing at all when disabled. Styling never
// changes the characters that count toward column width, so it is applied to
// cells only after padding.
type styler struct {
	enabled bool
}

func (s styler) wrap(code, text string) string {
	if !s.enabled {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

func (s styler) red(t string) string    { return s.wrap("31", t) }
func (s styler) green(t string) string  { return s.wrap("32", t) }
func (s styler) yellow(t string) string { return s.wrap("33", t) }
func (s styler) bold(t string) string   { return s.wrap("1", t) }

// Render writes the comparison table. Color is an explicit capability of the
// destination, decided by the caller: with color off the output is plain
// deterministic text, byte-identical across runs on the same inputs.
func (r Report) Render(w io.Writer, color bool) {
	st := styler{enabled: color}
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.bold("=== HIFI-WIFI BENCHMARK GRADER ==="))
	fmt.Fprintf(w, "Stock: %s\n", r.StockLabel)
	fmt.Fprintf(w, "HiFi:  %s\n", r.HiFiLabel)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-25s | %-12s | %-12s | %-10s\n", "METRIC", "STOCK", "HIFI", "DIFF")
	fmt.Fprintln(w, rule)

	row(w, "TCP Speed (Mbps)", cell(r.Stock.TCPMbps), cell(r.HiFi.TCPMbps), diffCell(r.Diffs.TCP, RelativePercent, st))
	row(w, "UDP Jitter (ms)", cell(r.Stock.JitterMs), cell(r.HiFi.JitterMs), diffCell(r.Diffs.Jitter, RelativePercent, st))
	row(w, "UDP Loss (%)", cell(r.Stock.UDPLoss), cell(r.HiFi.UDPLoss), diffCell(r.Diffs.UDPLoss, AbsoluteDelta, st))
	row(w, "MTR Latency (avg ms)", latencyCell(r.Stock), latencyCell(r.HiFi), diffCell(r.Diffs.Latency, RelativePercent, st))

	// Hop loss is noise when both sides are clean, so the row only shows up
	// once either side reports any.
	if nonzeroLoss(r.Stock.MTRLoss) || nonzeroLoss(r.HiFi.MTRLoss) {
		row(w, "MTR Pkt Loss (%)", cell(r.Stock.MTRLoss), cell(r.HiFi.MTRLoss), fmt.Sprintf("%10s", "--"))
	}

	fmt.Fprintln(w, rule)

	if r.Verdict == VerdictNoData {
		fmt.Fprintln(w, st.yellow("NO DATA COLLECTED (Check connection or tools)"))
		return
	}

	fmt.Fprint(w, "Assessment: ")
	fmt.Fprintln(w, r.verdictText(st))
	fmt.Fprint(w, "\n\n")
}

func (r Report) verdictText(st styler) string {
	switch r.Verdict {
	case VerdictImprovement:
		return st.green("IMPROVEMENT DETECTED ✅")
	case VerdictRegression:
		return st.red("POSSIBLE REGRESSION ❌")
	default:
		return "NO SIGNIFICANT CHANGE ➖"
	}
}

func row(w io.Writer, label, stock, hifi, diff string) {
	fmt.Fprintf(w, "%-25s | %-12s | %-12s | %s\n", label, stock, hifi, diff)
}

// cell formats one value at fixed width, 2 decimals, N/A right-justified to
// the same width so columns stay aligned.
func cell(m models.Metric) string {
	if !m.Valid {
		return fmt.Sprintf("%10s", "N/A")
	}
	return fmt.Sprintf("%10.2f", m.Value)
}

// latencyCell renders a timed-out destination as a label instead of the
// stale number the trace still carries.
func latencyCell(side models.SideMetrics) string {
	if timedOut(side.MTRLoss) {
		return timeoutCell
	}
	return cell(side.LatencyMs)
}

func diffCell(d Diff, mode Mode, st styler) string {
	if d.Class == NotComparable {
		return diffPlaceholder
	}
	var text string
	if mode == RelativePercent {
		text = fmt.Sprintf("%+7.1f%%", d.Delta)
	} else {
		text = fmt.Sprintf("%+7.2f", d.Delta)
	}
	switch d.Class {
	case Improvement:
		return st.green(text)
	case Regression:
		return st.red(text)
	default:
		return text
	}
}

func nonzeroLoss(m models.Metric) bool {
	return m.Valid && m.Value > 0
}

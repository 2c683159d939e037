package collector

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"hifi-bench/pkg/config"
	"hifi-bench/pkg/grader"
)

// Collector runs the benchmark suite against the configured server and
// writes each tool's raw JSON output into a side directory under the fixed
// filenames the grader reads.
type Collector struct {
	iperfBin string
	mtrBin   string
	host     string
	port     int
	duration int
	udpBW    string
	cycles   int
}

func New(cfg config.BenchConfig) *Collector {
	return &Collector{
		iperfBin: cfg.IperfBin,
		mtrBin:   cfg.MTRBin,
		host:     cfg.Host,
		port:     cfg.Port,
		duration: cfg.DurationSecs,
		udpBW:    cfg.UDPBandwidth,
		cycles:   cfg.MTRCycles,
	}
}

// Verify checks that the benchmark binaries exist before a run. iperf3 and
// mtr come from distro packages, so there is nothing to download here, just
// an early failure with a usable message.
func (c *Collector) Verify() error {
	for _, bin := range []string{c.iperfBin, c.mtrBin} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("benchmark tool not found: %w", err)
		}
	}
	if c.host == "" {
		return fmt.Errorf("no benchmark host configured (bench.host)")
	}
	return nil
}

func (c *Collector) tcpArgs() []string {
	return []string{"-J", "-c", c.host, "-p", strconv.Itoa(c.port), "-t", strconv.Itoa(c.duration)}
}

func (c *Collector) udpArgs() []string {
	return append(c.tcpArgs(), "-u", "-b", c.udpBW)
}

func (c *Collector) mtrArgs() []string {
	return []string{"--json", "-c", strconv.Itoa(c.cycles), c.host}
}

// Run collects all three result files into dir. A tool failure is not fatal:
// iperf3 reports its own errors as JSON (which the grader understands), and
// a tool that produced nothing simply leaves no file, which grades as absent
// data. The only hard error is an unwritable output directory.
func (c *Collector) Run(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create result dir: %w", err)
	}

	c.runTool(dir, grader.FileTCP, c.iperfBin, c.tcpArgs())
	c.runTool(dir, grader.FileUDP, c.iperfBin, c.udpArgs())
	c.runTool(dir, grader.FileMTR, c.mtrBin, c.mtrArgs())
	return nil
}

func (c *Collector) runTool(dir, filename, bin string, args []string) {
	log.Printf("Executing command: %s %s", bin, strings.Join(args, " "))

	cmd := exec.Command(bin, args...)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		// Keep whatever the tool managed to print; iperf3 emits an
		// {"error": ...} document on failure and the grader handles it.
		log.Printf("%s failed: %v", bin, err)
	}
	if len(out) == 0 {
		log.Printf("%s produced no output, skipping %s", bin, filename)
		return
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, out, 0644); err != nil {
		log.Printf("write %s: %v", path, err)
		return
	}
	log.Printf("Wrote %s (%d bytes)", path, len(out))
}

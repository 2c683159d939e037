package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"hifi-bench/pkg/collector"
	"hifi-bench/pkg/config"
	"hifi-bench/pkg/gist"
	"hifi-bench/pkg/grader"
	"hifi-bench/pkg/models"
	"hifi-bench/pkg/notifier"
)

const defaultConfigPath = "/etc/hifi-wifi/bench.yml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "config file path")
	collectSide := flag.String("collect", "", `run the benchmark suite into the "stock" or "hifi" directory before grading`)
	watch := flag.Bool("watch", false, "keep re-collecting the hifi side and re-grading on the config cron schedule")
	push := flag.Bool("push", false, "publish the result to the configured gist/telegram after grading")
	noColor := flag.Bool("no-color", false, "disable ANSI colors even on a terminal")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	stockDir, hifiDir := flag.Arg(0), flag.Arg(1)

	cfg := config.Load(*configPath)
	color := !*noColor && isTerminal(os.Stdout)

	var col *collector.Collector
	if *collectSide != "" || *watch {
		col = collector.New(cfg.Bench)
		if err := col.Verify(); err != nil {
			log.Fatal("collector: ", err)
		}
	}

	if *collectSide != "" {
		dir := hifiDir
		switch *collectSide {
		case "hifi":
		case "stock":
			dir = stockDir
		default:
			log.Fatalf("-collect must be \"stock\" or \"hifi\", got %q", *collectSide)
		}
		if err := col.Run(dir); err != nil {
			log.Fatal("collect: ", err)
		}
	}

	report := grader.NewReport(stockDir, hifiDir)
	report.Render(os.Stdout, color)
	if *push {
		publish(cfg, report)
	}

	if !*watch {
		return
	}

	// Continuous A/B watch: the stock directory stays as the recorded
	// baseline, the hifi side is re-measured every tick while the optimizer
	// service runs. Publishing only fires when the verdict moves so an
	// hourly schedule does not spam anyone.
	lastVerdict := report.Verdict
	c := cron.New()
	_, err := c.AddFunc(cfg.Cron, func() {
		if err := col.Run(hifiDir); err != nil {
			log.Print("collect: ", err)
			return
		}
		rep := grader.NewReport(stockDir, hifiDir)
		rep.Render(os.Stdout, color)
		if rep.Verdict != lastVerdict {
			publish(cfg, rep)
			lastVerdict = rep.Verdict
		}
	})
	if err != nil {
		log.Fatalf("invalid cron schedule %q: %v", cfg.Cron, err)
	}
	log.Printf("Watching on schedule %q", cfg.Cron)
	c.Run()
}

func publish(cfg *config.Config, rep grader.Report) {
	var buf bytes.Buffer
	rep.Render(&buf, false)

	if cfg.Notifications.Enabled {
		tn, err := notifier.NewTelegramNotifier(cfg.Notifications.Telegram)
		if err != nil {
			log.Print("notifier: ", err)
		} else if err := tn.Notify("hifi-wifi benchmark: "+rep.Verdict.String(), buf.String()); err != nil {
			log.Print("notifier: ", err)
		}
	}

	if cfg.Gist.GistID != "" {
		cmp := models.Comparison{Stock: rep.Stock, HiFi: rep.HiFi, Verdict: rep.Verdict.String()}
		if err := gist.NewClient(cfg.Gist.Token).PushComparison(cfg.Gist.GistID, cmp, buf.String()); err != nil {
			log.Print("gist: ", err)
		}
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: hifi-bench [flags] <stock_dir> <hifi_dir>")
	flag.PrintDefaults()
}

// File: pkg/config/config.go

package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type BenchConfig struct {
	IperfBin     string `yaml:"iperf_bin"`
	MTRBin       string `yaml:"mtr_bin"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	DurationSecs int    `yaml:"duration_secs"`
	UDPBandwidth string `yaml:"udp_bandwidth"`
	MTRCycles    int    `yaml:"mtr_cycles"`
}

type TelegramProxyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"`
	Address string `yaml:"address"`
	ApiURL  string `yaml:"api_url"`
}

type TelegramConfig struct {
	BotToken string              `yaml:"bot_token"`
	ChatID   string              `yaml:"chat_id"`
	Proxy    TelegramProxyConfig `yaml:"proxy"`
}

type NotificationsConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// Config 是整个应用的配置结构
type Config struct {
	Cron string `yaml:"cron"`

	Bench BenchConfig `yaml:"bench"`

	Gist struct {
		Token  string `yaml:"token"`
		GistID string `yaml:"gist_id"`
	} `yaml:"gist"`

	Notifications NotificationsConfig `yaml:"notifications"`
}

// Load 读取并解析配置文件. A missing or unreadable file is not fatal: the
// grader must keep working on already-collected results, so this falls back
// to defaults with a warning.
func Load(path string) *Config {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config: %v, using defaults", err)
		cfg.applyDefaults()
		return &cfg
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		log.Printf("config: parse %s: %v, using defaults", path, err)
		cfg = Config{}
	}

	// 展开所有需要使用环境变量的字段
	cfg.Gist.Token = os.ExpandEnv(cfg.Gist.Token)
	cfg.Notifications.Telegram.BotToken = os.ExpandEnv(cfg.Notifications.Telegram.BotToken)
	cfg.Notifications.Telegram.ChatID = os.ExpandEnv(cfg.Notifications.Telegram.ChatID)

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Bench.IperfBin == "" {
		c.Bench.IperfBin = "iperf3"
	}
	if c.Bench.MTRBin == "" {
		c.Bench.MTRBin = "mtr"
	}
	if c.Bench.Port <= 0 {
		c.Bench.Port = 5201
	}
	if c.Bench.DurationSecs <= 0 {
		c.Bench.DurationSecs = 10
	}
	if c.Bench.UDPBandwidth == "" {
		c.Bench.UDPBandwidth = "0" // unlimited, let iperf3 saturate the link
	}
	if c.Bench.MTRCycles <= 0 {
		c.Bench.MTRCycles = 10
	}
	if c.Cron == "" {
		c.Cron = "@hourly"
	}
}

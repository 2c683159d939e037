// File: pkg/notifier/notifier.go
package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"hifi-bench/pkg/config"
)

// Notifier 定义了通知器的通用接口
type Notifier interface {
	Notify(title, report string) error
}

// TelegramNotifier pushes grading reports through a Telegram bot. Handhelds
// running the A/B watch are usually headless, so this is how a regression
// actually reaches anyone.
type TelegramNotifier struct {
	BotToken   string
	ChatID     string
	apiURL     string
	httpClient *http.Client
}

func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	apiBaseURL := "https://api.telegram.org"

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	// [核心] 根据配置设置代理
	if cfg.Proxy.Enabled {
		switch cfg.Proxy.Type {
		case "socks5":
			if cfg.Proxy.Address == "" {
				return nil, fmt.Errorf("socks5 proxy address is not set")
			}
			log.Println("Telegram Notifier: Using SOCKS5 proxy:", cfg.Proxy.Address)
			dialer, err := proxy.SOCKS5("tcp", cfg.Proxy.Address, nil, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("failed to create socks5 dialer: %w", err)
			}
			client.Transport = &http.Transport{
				Dial: dialer.Dial,
			}
		case "reverse_proxy":
			if cfg.Proxy.ApiURL == "" {
				return nil, fmt.Errorf("reverse proxy api_url is not set")
			}
			log.Println("Telegram Notifier: Using reverse proxy:", cfg.Proxy.ApiURL)
			apiBaseURL = strings.TrimSuffix(cfg.Proxy.ApiURL, "/")
		default:
			return nil, fmt.Errorf("invalid telegram proxy type: %s", cfg.Proxy.Type)
		}
	}

	return &TelegramNotifier{
		BotToken:   cfg.BotToken,
		ChatID:     cfg.ChatID,
		apiURL:     fmt.Sprintf("%s/bot%s/sendMessage", apiBaseURL, cfg.BotToken),
		httpClient: client,
	}, nil
}

// Notify sends the report inside a <pre> block so the column alignment
// survives Telegram's proportional font.
func (t *TelegramNotifier) Notify(title, report string) error {
	fullMessage := fmt.Sprintf("<b>%s</b>\n<pre>%s</pre>", title, report)

	body, _ := json.Marshal(map[string]string{
		"chat_id":    t.ChatID,
		"text":       fullMessage,
		"parse_mode": "HTML",
	})

	req, err := http.NewRequest("POST", t.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram notification failed with status: %s", resp.Status)
	}

	log.Println("Telegram notification sent successfully.")
	return nil
}

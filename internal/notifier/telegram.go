package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pfrederiksen/referee-stats/internal/region"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	telegramTimeout    = 10 * time.Second
)

// TelegramNotifier sends the region summary to a Telegram chat
type TelegramNotifier struct {
	baseURL    string
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewTelegramNotifier creates a Telegram notifier using environment variables
// Required environment variables:
// - TELEGRAM_BOT_TOKEN
// - TELEGRAM_CHAT_ID
func NewTelegramNotifier() (*TelegramNotifier, error) {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	if botToken == "" {
		return nil, fmt.Errorf("bot token is required (TELEGRAM_BOT_TOKEN)")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required (TELEGRAM_CHAT_ID)")
	}

	return &TelegramNotifier{
		baseURL:  telegramAPIBaseURL,
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// Notify sends the summary as one message
func (n *TelegramNotifier) Notify(aggregates []region.Aggregate) error {
	if len(aggregates) == 0 {
		return fmt.Errorf("no regions to publish")
	}
	return n.sendMessage(FormatSummary(aggregates))
}

func (n *TelegramNotifier) sendMessage(text string) error {
	url := fmt.Sprintf("%s%s/sendMessage", n.baseURL, n.botToken)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CommandHandler is called with a slash command and returns the reply text,
// or "" for no reply.
type CommandHandler func(command string) string

// pollUpdate is one entry of a getUpdates response.
type pollUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// commandText extracts a dispatchable command from an update. Only slash
// commands from the configured chat are served: the scan bot lives in one
// private chat and must not react to chatter or to strangers messaging the
// bot. The command word is normalized by dropping an "@botname" suffix and
// any trailing arguments.
func (t *TelegramNotifier) commandText(u pollUpdate) (string, bool) {
	if u.Message == nil {
		return "", false
	}
	if strconv.FormatInt(u.Message.Chat.ID, 10) != t.ChatID {
		return "", false
	}
	text := strings.TrimSpace(u.Message.Text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text)[0]
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return cmd, true
}

// fetchUpdates long-polls getUpdates once and returns the new updates.
func (t *TelegramNotifier) fetchUpdates(ctx context.Context, offset int) ([]pollUpdate, error) {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?offset=%d&timeout=30", t.BotToken, offset)
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}

	client := &http.Client{Timeout: 35 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll updates: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}

	var result struct {
		OK     bool         `json:"ok"`
		Result []pollUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram getUpdates not ok: %s", string(body))
	}
	return result.Result, nil
}

// StartPolling long-polls for commands and dispatches them to the handler.
// Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] command polling stopped")
			return
		default:
		}

		updates, err := t.fetchUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] poll commands: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			cmd, ok := t.commandText(u)
			if !ok {
				continue
			}
			log.Printf("[INFO] serving command %s", cmd)
			if reply := handler(cmd); reply != "" {
				if err := t.Send(reply); err != nil {
					log.Printf("[ERROR] send command reply: %v", err)
				}
			}
		}
	}
}

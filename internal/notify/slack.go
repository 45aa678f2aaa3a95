package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const DefaultSlackAPIURL = "https://slack.com/api/chat.postMessage"

type SlackConfig struct {
	Enabled  bool
	BotToken string
	Channels []string
	APIURL   string
	Timeout  time.Duration
}

// Slack posts messages through chat.postMessage, once per channel.
type Slack struct {
	client   *http.Client
	token    string
	channels []string
	apiURL   string
	enabled  bool
	logger   *slog.Logger
}

var _ Sink = (*Slack)(nil)

func NewSlack(cfg SlackConfig, logger *slog.Logger) *Slack {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultSlackAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	channels := make([]string, 0, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		if ch = strings.TrimSpace(ch); ch != "" {
			channels = append(channels, ch)
		}
	}

	s := &Slack{
		client:   &http.Client{Timeout: cfg.Timeout},
		token:    cfg.BotToken,
		channels: channels,
		apiURL:   cfg.APIURL,
		enabled:  cfg.Enabled,
		logger:   logger.With("component", "slack"),
	}

	switch {
	case !s.enabled:
		s.logger.Info("slack notifications disabled")
	case s.token == "" || len(s.channels) == 0:
		s.logger.Warn("slack bot token or channels missing, notifications disabled")
		s.enabled = false
	}
	return s
}

type slackMessage struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type slackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Send reports true only when every channel accepted the message.
func (s *Slack) Send(ctx context.Context, text string) bool {
	if !s.enabled {
		return false
	}

	ok := true
	for _, ch := range s.channels {
		if err := s.post(ctx, ch, text); err != nil {
			s.logger.Error("slack send failed", "channel", ch, "error", err)
			ok = false
			continue
		}
		s.logger.Debug("slack message sent", "channel", ch)
	}
	return ok
}

func (s *Slack) post(ctx context.Context, channel, text string) error {
	body, err := json.Marshal(slackMessage{Channel: channel, Text: text})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %s", resp.Status)
	}

	var out slackResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("slack api error: %s", out.Error)
	}
	return nil
}

// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	domainTelegram "verse_channel_bot/internal/domain/telegram"
)

// Config describes how to reach the Bot API and which channel to post to.
type Config struct {
	APIURL    string
	Token     string
	ChannelID string // numeric id ("-100123") or public username ("@channel")
	Timeout   time.Duration
}

// channel is a telebot.Recipient for either form of channel identifier.
type channel string

func (c channel) Recipient() string { return string(c) }

// TelebotClient implements the domain Client using gopkg.in/telebot.v3.
type TelebotClient struct {
	bot     *telebot.Bot
	channel channel
	token   string
	logger  logrus.FieldLogger
}

var _ domainTelegram.Client = (*TelebotClient)(nil)

type getMeResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	} `json:"result"`
	Description string `json:"description"`
}

// NewTelebotClient builds the bot offline; no request is made until
// CheckConnectivity or SendMessage is called.
func NewTelebotClient(cfg Config, logger logrus.FieldLogger) (*TelebotClient, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}
	if cfg.ChannelID == "" {
		return nil, fmt.Errorf("telegram channel id is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	log := logger.WithField("component", "telegram")
	bot, err := telebot.NewBot(telebot.Settings{
		URL:     cfg.APIURL,
		Token:   cfg.Token,
		Client:  &http.Client{Timeout: cfg.Timeout},
		Offline: true,
		OnError: func(err error, _ telebot.Context) {
			log.WithError(err).Error("telebot error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelebotClient{
		bot:     bot,
		channel: channel(cfg.ChannelID),
		token:   cfg.Token,
		logger:  log,
	}, nil
}

// CheckConnectivity calls getMe and succeeds only on an explicit ok:true.
func (c *TelebotClient) CheckConnectivity(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		c.logger.WithError(err).Error("Connectivity check cancelled")
		return false
	}

	data, err := c.bot.Raw("getMe", nil)
	if err != nil {
		c.logger.WithField("error", c.redact(err)).Error("Failed to connect to Telegram bot")
		return false
	}

	var resp getMeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.WithError(err).Error("Malformed getMe response")
		return false
	}
	if !resp.OK {
		c.logger.WithField("description", resp.Description).Error("Failed to connect to Telegram bot")
		return false
	}

	username := resp.Result.Username
	if username == "" {
		username = "unknown"
	}
	c.logger.WithField("username", "@"+username).Info("Bot connected")
	return true
}

// SendMessage posts Markdown text to the configured channel with link
// previews disabled.
func (c *TelebotClient) SendMessage(ctx context.Context, text string) bool {
	if err := ctx.Err(); err != nil {
		c.logger.WithError(err).Error("Send cancelled")
		return false
	}

	msg, err := c.bot.Send(c.channel, text, &telebot.SendOptions{
		ParseMode:             telebot.ModeMarkdown,
		DisableWebPagePreview: true,
	})
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"channel": string(c.channel),
			"error":   c.redact(err),
		}).Error("Telegram API error")
		return false
	}
	if msg == nil {
		c.logger.WithField("channel", string(c.channel)).Error("Telegram API returned no message")
		return false
	}

	c.logger.WithFields(logrus.Fields{
		"channel":    string(c.channel),
		"message_id": msg.ID,
	}).Info("Message sent successfully to Telegram")
	return true
}

// redact strips the bot token from transport errors, which embed the URL.
func (c *TelebotClient) redact(err error) string {
	return strings.ReplaceAll(err.Error(), c.token, "<token>")
}

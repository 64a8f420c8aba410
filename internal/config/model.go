package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Accepted [Monitor] source values.
const (
	SourceCommand  = "command"
	SourceGopsutil = "gopsutil"
)

// Config is the root configuration loaded from the INI file. It is built
// once at process start and never mutated afterwards.
type Config struct {
	Telegram   TelegramConfig
	Monitor    MonitorConfig
	Log        LogConfig
	Thresholds []Threshold
	Webhook    *WebhookConfig // nil when the [Webhook] section is absent
}

// TelegramConfig carries the bot credentials from the [Telegram] section.
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// MonitorConfig carries the optional [Monitor] section.
type MonitorConfig struct {
	Command        string // temperature query command line
	Source         string // "command" or "gopsutil"
	SensorKey      string // preferred sensor key for the gopsutil source
	LockFile       string
	RetryDelay     time.Duration // wait before the single read retry
	CommandTimeout time.Duration
	HTTPTimeout    time.Duration
}

// LogConfig carries the optional [Log] section.
type LogConfig struct {
	File  string
	Level string
}

// Threshold is one [Thresholds] entry. Entries keep file order; the table
// is expected to list limits from most to least severe so that the first
// exceeded limit is the one reported.
type Threshold struct {
	Limit   float64
	Message string
}

// WebhookConfig carries the optional [Webhook] section.
type WebhookConfig struct {
	URL    string
	Method string
}

// DefaultThresholds returns the table used when the config file carries no
// [Thresholds] section.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Limit: 80.0, Message: "TEMPERATURE IS VERY HIGH > 80c:"},
		{Limit: 70.0, Message: "TEMPERATURE IS HIGH > 70c:"},
		{Limit: 60.0, Message: "TEMPERATURE IS CLIMBING > 60c. Keep an eye on it:"},
	}
}

// DefaultConfig returns a config with sensible defaults for everything but
// the Telegram credentials, which have none.
func DefaultConfig() Config {
	return Config{
		Monitor: MonitorConfig{
			Command:        "vcgencmd measure_temp",
			Source:         SourceCommand,
			LockFile:       "/tmp/TempMonitor.lock",
			RetryDelay:     5 * time.Second,
			CommandTimeout: 10 * time.Second,
			HTTPTimeout:    10 * time.Second,
		},
		Log: LogConfig{
			File:  "temps.log",
			Level: "debug",
		},
		Thresholds: DefaultThresholds(),
	}
}

// ApplyDefaults fills zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Monitor.Command == "" {
		c.Monitor.Command = d.Monitor.Command
	}
	if c.Monitor.Source == "" {
		c.Monitor.Source = d.Monitor.Source
	}
	if c.Monitor.LockFile == "" {
		c.Monitor.LockFile = d.Monitor.LockFile
	}
	if c.Monitor.RetryDelay <= 0 {
		c.Monitor.RetryDelay = d.Monitor.RetryDelay
	}
	if c.Monitor.CommandTimeout <= 0 {
		c.Monitor.CommandTimeout = d.Monitor.CommandTimeout
	}
	if c.Monitor.HTTPTimeout <= 0 {
		c.Monitor.HTTPTimeout = d.Monitor.HTTPTimeout
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if len(c.Thresholds) == 0 {
		c.Thresholds = DefaultThresholds()
	}
	if c.Webhook != nil && c.Webhook.Method == "" {
		c.Webhook.Method = "POST"
	}
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Telegram.BotToken == "" {
		errs = append(errs, "telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		errs = append(errs, "telegram.chat_id is required")
	}

	switch c.Monitor.Source {
	case SourceCommand:
		if c.Monitor.Command == "" {
			errs = append(errs, "monitor.command is required when source is \"command\"")
		}
	case SourceGopsutil:
	default:
		errs = append(errs, fmt.Sprintf("monitor.source must be %q or %q (got %q)",
			SourceCommand, SourceGopsutil, c.Monitor.Source))
	}

	if c.Monitor.CommandTimeout <= 0 {
		errs = append(errs, "monitor.command_timeout must be > 0")
	}
	if c.Monitor.HTTPTimeout <= 0 {
		errs = append(errs, "monitor.http_timeout must be > 0")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error (got %q)", c.Log.Level))
	}

	for i, th := range c.Thresholds {
		if th.Message == "" {
			errs = append(errs, fmt.Sprintf("thresholds[%d] (limit %v) has an empty message", i, th.Limit))
		}
	}

	if c.Webhook != nil {
		if u, err := url.Parse(c.Webhook.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, "webhook.url must be a valid http(s) URL")
		}
		validMethods := map[string]bool{"GET": true, "POST": true, "PUT": true}
		if !validMethods[strings.ToUpper(c.Webhook.Method)] {
			errs = append(errs, fmt.Sprintf("webhook.method must be GET, POST, or PUT (got %q)", c.Webhook.Method))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// ConfigError reports a missing, unreadable, or malformed config file.
// It is fatal: the process exits without attempting a monitoring pass.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Load reads the INI config file at path, applies defaults for every
// optional section, and validates the result. Any failure is returned as a
// *ConfigError.
func Load(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}

	cfg, err := parse(file)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

func parse(file *ini.File) (Config, error) {
	var cfg Config

	tg, err := file.GetSection("Telegram")
	if err != nil {
		return cfg, errors.New("section [Telegram] is missing")
	}
	if cfg.Telegram.BotToken, err = requiredKey(tg, "bot_token"); err != nil {
		return cfg, err
	}
	if cfg.Telegram.ChatID, err = requiredKey(tg, "chat_id"); err != nil {
		return cfg, err
	}

	if mon, err := file.GetSection("Monitor"); err == nil {
		cfg.Monitor.Command = cleanValue(mon.Key("command").String())
		cfg.Monitor.Source = cleanValue(mon.Key("source").String())
		cfg.Monitor.SensorKey = cleanValue(mon.Key("sensor_key").String())
		cfg.Monitor.LockFile = cleanValue(mon.Key("lock_file").String())

		if cfg.Monitor.RetryDelay, err = durationKey(mon, "retry_delay"); err != nil {
			return cfg, err
		}
		if cfg.Monitor.CommandTimeout, err = durationKey(mon, "command_timeout"); err != nil {
			return cfg, err
		}
		if cfg.Monitor.HTTPTimeout, err = durationKey(mon, "http_timeout"); err != nil {
			return cfg, err
		}
	}

	if lg, err := file.GetSection("Log"); err == nil {
		cfg.Log.File = cleanValue(lg.Key("file").String())
		cfg.Log.Level = cleanValue(lg.Key("level").String())
	}

	if th, err := file.GetSection("Thresholds"); err == nil {
		for _, key := range th.Keys() {
			limit, err := strconv.ParseFloat(key.Name(), 64)
			if err != nil {
				return cfg, fmt.Errorf("threshold key %q is not a number", key.Name())
			}
			cfg.Thresholds = append(cfg.Thresholds, Threshold{
				Limit:   limit,
				Message: cleanValue(key.String()),
			})
		}
	}

	if wh, err := file.GetSection("Webhook"); err == nil {
		cfg.Webhook = &WebhookConfig{
			URL:    cleanValue(wh.Key("url").String()),
			Method: strings.ToUpper(cleanValue(wh.Key("method").String())),
		}
	}

	return cfg, nil
}

// requiredKey fetches a key that must be present with a non-empty value.
func requiredKey(sec *ini.Section, name string) (string, error) {
	if !sec.HasKey(name) {
		return "", fmt.Errorf("key %q is missing from section [%s]", name, sec.Name())
	}
	v := cleanValue(sec.Key(name).String())
	if v == "" {
		return "", fmt.Errorf("key %q in section [%s] is empty", name, sec.Name())
	}
	return v, nil
}

func durationKey(sec *ini.Section, name string) (time.Duration, error) {
	raw := cleanValue(sec.Key(name).String())
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("key %q in section [%s]: %v (want a duration such as \"5s\")", name, sec.Name(), err)
	}
	return d, nil
}

// cleanValue strips surrounding whitespace and quote characters. Credentials
// pasted into the file are often wrapped in quotes; both styles load the same.
func cleanValue(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"'`)
}

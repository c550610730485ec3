package main

import (
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/cloudtrim/cloudtrim/internal/config"
)

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "cloudtrim-api")
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips the password from a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if username := parsed.User.Username(); username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}
	return parsed.String()
}

// sanitizeError replaces any secret found in err's message with its redacted form.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}
	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

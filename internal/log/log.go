// Package log is the application's action log: structured events carrying
// request context (request id, peer, route) alongside a dotted action name.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"resellit/internal/config"
)

var base = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the process logger. Safe to call once at startup; the
// zero value logs JSON at info level, so tests may skip it entirely.
func Init(cfg config.LogConfig) {
	var out io.Writer = os.Stdout
	if strings.ToLower(cfg.Format) == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	base = zerolog.New(out).Level(level).With().Timestamp().Logger()
	if err != nil {
		base.Warn().Msgf("invalid log level %q, defaulting to info", cfg.Level)
	}
}

func write(level zerolog.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := base.WithLevel(level)
	if c != nil {
		e = e.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e = e.Str("req_id", rid)
		}
	}
	if err != nil {
		e = e.Err(err)
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Str("action", action).Msg(action)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, c, action, nil, fields)
}

// Audit records a state-changing action for after-the-fact review.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["audit"] = true
	write(zerolog.InfoLevel, c, action, nil, fields)
}

// Security records rejected or suspicious input.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.WarnLevel, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zerolog.ErrorLevel, c, action, err, fields)
}

// Fatal logs and exits; for startup failures only.
func Fatal(action string, err error) {
	base.Fatal().Err(err).Str("action", action).Msg(action)
}

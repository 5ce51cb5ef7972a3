package logger

import (
	"bytes"
	"strings"
	"testing"

	zlog "github.com/rs/zerolog/log"
)

func TestConfigure(t *testing.T) {
	t.Run("defaults_to_info_console", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")

		var buf bytes.Buffer
		Configure(Options{Writer: &buf})

		if got := Logger.GetLevel().String(); got != "info" {
			t.Fatalf("expected level=info, got %s", got)
		}

		Logger.Info().Msg("hello")
		out := buf.String()
		if strings.HasPrefix(strings.TrimSpace(out), "{") {
			t.Fatalf("expected console output, got json-like: %q", out)
		}
		if !strings.Contains(out, "hello") {
			t.Fatalf("expected message in output, got: %q", out)
		}
	})

	t.Run("options_beat_env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")

		var buf bytes.Buffer
		Configure(Options{Level: "warn", Writer: &buf})

		if got := Logger.GetLevel().String(); got != "warn" {
			t.Fatalf("expected level=warn from options, got %s", got)
		}
	})

	t.Run("invalid_level_falls_back_to_info", func(t *testing.T) {
		var buf bytes.Buffer
		Configure(Options{Level: "not-a-level", Format: "console", Writer: &buf})

		Logger.Debug().Msg("debug-hidden")
		Logger.Info().Msg("info-shown")
		out := buf.String()

		if strings.Contains(out, "debug-hidden") {
			t.Fatalf("did not expect debug output at info level, got: %q", out)
		}
		if !strings.Contains(out, "info-shown") {
			t.Fatalf("expected info output, got: %q", out)
		}
	})

	t.Run("json_format_emits_json_lines", func(t *testing.T) {
		var buf bytes.Buffer
		Configure(Options{Level: "info", Format: "json", Writer: &buf})

		Logger.Info().Str("k", "v").Msg("hello")
		out := strings.TrimSpace(buf.String())

		if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"k":"v"`) {
			t.Fatalf("expected json object line with k field, got: %q", out)
		}
	})

	t.Run("mirrors_into_global", func(t *testing.T) {
		Configure(Options{Level: "warn", Format: "json", Writer: &bytes.Buffer{}})

		if zlog.Logger.GetLevel() != Logger.GetLevel() {
			t.Fatalf("expected global logger level %s, got %s",
				Logger.GetLevel(), zlog.Logger.GetLevel())
		}
	})
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "info", Format: "json", Writer: &buf})

	l := WithRequestID("req-7")
	l.Info().Msg("tagged")
	if !strings.Contains(buf.String(), `"request_id":"req-7"`) {
		t.Fatalf("expected request_id field, got: %q", buf.String())
	}
}

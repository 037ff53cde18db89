package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithOutput(Config{Level: level, Format: "json", ServiceName: "test"}, buf)
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	return result
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json", ServiceName: "explorer"}, &buf)
	log.Info().Msg("search completed")

	result := decode(t, &buf)
	assert.Equal(t, "info", result["level"])
	assert.Equal(t, "search completed", result["message"])
	assert.Equal(t, "explorer", result["service"])
	assert.NotEmpty(t, result["time"])
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "console", ServiceName: "explorer"}, &buf)
	log.Info().Msg("search completed")

	output := buf.String()
	assert.Contains(t, output, "search completed")
	assert.Contains(t, output, "INF")
}

func TestNewLogger_LogLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logged at debug level", "debug", "debug", true},
		{"debug NOT logged at info level", "info", "debug", false},
		{"warn logged at info level", "info", "warn", true},
		{"info NOT logged at warn level", "warn", "info", false},
		{"upper-case level accepted", "WARN", "warn", true},
		{"warn NOT logged at error level", "error", "warn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := newTestLogger(&buf, tt.configLevel)

			switch tt.logLevel {
			case "debug":
				log.Debug().Msg("test")
			case "info":
				log.Info().Msg("test")
			case "warn":
				log.Warn().Msg("test")
			}

			if tt.shouldLog {
				assert.NotEmpty(t, buf.String(), "expected log output")
			} else {
				assert.Empty(t, buf.String(), "expected no log output")
			}
		})
	}
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, "verbose")

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Info().Msg("shown")
	assert.NotEmpty(t, buf.String())
}

func TestNewLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json", EnableCaller: true}, &buf)
	log.Info().Msg("test")

	result := decode(t, &buf)
	require.Contains(t, result, "caller")
	assert.Contains(t, result["caller"].(string), "logger_test.go")
	assert.NotContains(t, result, "service", "empty service name is omitted")
}

func TestLogger_ContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, "info")

	log.WithRequestID("req-123").
		WithSession("sess-1").
		WithUpstream("amadeus").
		WithSearch("JFK", "LHR", 3).
		Info().Msg("test")

	result := decode(t, &buf)
	assert.Equal(t, "req-123", result["request_id"])
	assert.Equal(t, "sess-1", result["session_id"])
	assert.Equal(t, "amadeus", result["upstream"])
	assert.Equal(t, "JFK", result["origin"])
	assert.Equal(t, "LHR", result["destination"])
	assert.Equal(t, float64(3), result["generation"])
}

func TestLogger_WithContextDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, "info")
	_ = log.WithContext("custom_field", "custom_value")

	log.Info().Msg("parent")
	assert.NotContains(t, decode(t, &buf), "custom_field")
}

func TestAttachAndFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, "info").WithSession("sess-9")

	ctx := log.Attach(context.Background())
	FromContext(ctx).Info().Msg("from ctx")

	assert.Equal(t, "sess-9", decode(t, &buf)["session_id"])
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	SetGlobal(NewWithOutput(Config{Level: "info", Format: "json", ServiceName: "global"}, &buf))
	t.Cleanup(func() { Global = nil })

	FromContext(context.Background()).Info().Msg("fallback")

	assert.Equal(t, "global", decode(t, &buf)["service"])
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() { log.Info().Msg("this should not appear") })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.EnableCaller)
	assert.Equal(t, "flight-offer-explorer", cfg.ServiceName)
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	SetGlobal(NewWithOutput(Config{Level: "info", Format: "json", ServiceName: "global-test"}, &buf))
	t.Cleanup(func() { Global = nil })

	Info().Msg("global info")
	Warn().Msg("global warn")

	output := buf.String()
	assert.Contains(t, output, "global info")
	assert.Contains(t, output, "global warn")
	assert.Contains(t, output, "global-test")
}

func TestGlobalLoggerAutoInit(t *testing.T) {
	Global = nil
	t.Cleanup(func() { Global = nil })

	Debug().Msg("auto-init test")

	assert.NotNil(t, Global)
}

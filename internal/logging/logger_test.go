// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if idx := strings.LastIndex(line, "\n"); idx >= 0 {
		line = line[idx+1:]
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	return out
}

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	buf := &bytes.Buffer{}
	SetLogger(NewTestLogger(buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInit_JSONOutput(t *testing.T) {
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})

	buf := &bytes.Buffer{}
	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: buf})
	Debug().Str("form", "login").Msg("Form submitted")

	out := decodeLine(t, buf)
	if out["message"] != "Form submitted" {
		t.Errorf("message = %v, want %q", out["message"], "Form submitted")
	}
	if out["level"] != "debug" {
		t.Errorf("level = %v, want debug", out["level"])
	}
	if out["form"] != "login" {
		t.Errorf("form = %v, want login", out["form"])
	}
	if _, ok := out["time"]; !ok {
		t.Error("time field missing")
	}
}

func TestInit_LevelFilters(t *testing.T) {
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})

	buf := &bytes.Buffer{}
	Init(Config{Level: "warn", Output: buf})
	Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %q", buf.String())
	}
	Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn message missing from %q", buf.String())
	}
}

func TestErrAndComponent(t *testing.T) {
	buf := captureGlobal(t)

	Err(errors.New("insert failed")).Msg("Product insert failed")
	out := decodeLine(t, buf)
	if out["error"] != "insert failed" {
		t.Errorf("error = %v, want %q", out["error"], "insert failed")
	}

	buf.Reset()
	l := WithComponent("products")
	l.Info().Msg("mounted")
	out = decodeLine(t, buf)
	if out["component"] != "products" {
		t.Errorf("component = %v, want products", out["component"])
	}
}

func TestCtx_CarriesIDs(t *testing.T) {
	buf := captureGlobal(t)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr1234")
	Ctx(ctx).Info().Msg("hello")

	out := decodeLine(t, buf)
	if out["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", out["request_id"])
	}
	if out["correlation_id"] != "corr1234" {
		t.Errorf("correlation_id = %v, want corr1234", out["correlation_id"])
	}
}

func TestCtx_EmptyContext(t *testing.T) {
	buf := captureGlobal(t)

	Ctx(context.Background()).Info().Msg("plain")
	out := decodeLine(t, buf)
	if _, ok := out["request_id"]; ok {
		t.Error("request_id should be absent")
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("RequestIDFromContext on empty context should be empty")
	}
}

func TestContextWithNewCorrelationID(t *testing.T) {
	ctx := ContextWithNewCorrelationID(context.Background())
	if got := CorrelationIDFromContext(ctx); len(got) != 8 {
		t.Errorf("correlation id %q has length %d, want 8", got, len(got))
	}
}

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	buf := &bytes.Buffer{}
	prevLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prevLevel) })

	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(buf)))
	logger.With("service", "api").WithGroup("event").Warn("service restarted",
		"attempt", 2, "err", errors.New("boom"))

	out := decodeLine(t, buf)
	if out["level"] != "warn" {
		t.Errorf("level = %v, want warn", out["level"])
	}
	if out["message"] != "service restarted" {
		t.Errorf("message = %v", out["message"])
	}
	if out["event.attempt"] != float64(2) {
		t.Errorf("event.attempt = %v, want 2", out["event.attempt"])
	}
	if out["event.err"] != "boom" {
		t.Errorf("event.err = %v, want boom", out["event.err"])
	}
	// attrs added before WithGroup are still prefixed by the handler's groups
	if out["event.service"] != "api" {
		t.Errorf("event.service = %v, want api", out["event.service"])
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandlerWithLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn logger")
	}
}

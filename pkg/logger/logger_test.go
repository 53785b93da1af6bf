package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInfoCarriesServiceAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Service: "donation-service", Level: "info", Output: &buf})

	ctx := WithRequestID(context.Background(), "req-42")
	Info(ctx).Str("donation_id", "7").Msg("donation created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["service"] != "donation-service" || entry["request_id"] != "req-42" {
		t.Fatalf("unexpected log fields: %v", entry)
	}
	if entry["message"] != "donation created" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Service: "svc", Level: "warn", Output: &buf})

	Debug(context.Background()).Msg("hidden")
	Info(context.Background()).Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %s", buf.String())
	}
	Warn(context.Background()).Msg("shown")
	if buf.Len() == 0 {
		t.Fatal("expected warn output")
	}
}

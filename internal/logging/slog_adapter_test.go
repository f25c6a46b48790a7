// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Enabled(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	handler := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}

	for _, tt := range tests {
		if got := handler.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, `"level":"debug"`},
		{slog.LevelInfo, `"level":"info"`},
		{slog.LevelWarn, `"level":"warn"`},
		{slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(NewSlogHandler(zerolog.New(&buf)))
		logger.Log(context.Background(), tt.level, "supervisor event", "service", "http-server")

		output := buf.String()
		if !strings.Contains(output, tt.want) {
			t.Errorf("level %v: expected %s in output: %s", tt.level, tt.want, output)
		}
		if !strings.Contains(output, `"service":"http-server"`) {
			t.Errorf("level %v: expected attribute in output: %s", tt.level, output)
		}
	}
}

func TestSlogHandler_AttributeKinds(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.Info("kinds",
		slog.String("s", "v"),
		slog.Int("i", 42),
		slog.Uint64("u", 7),
		slog.Float64("f", 1.5),
		slog.Bool("b", true),
		slog.Duration("d", time.Second),
		slog.Any("err", errors.New("boom")),
	)

	output := buf.String()
	for _, want := range []string{`"s":"v"`, `"i":42`, `"u":7`, `"f":1.5`, `"b":true`, `"d":1000`, `"err":"boom"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.With("tree", "root").WithGroup("svc").WithGroup("http").Info("started", "port", 8080)

	output := buf.String()
	if !strings.Contains(output, `"tree":"root"`) || strings.Contains(output, `"svc.http.tree"`) {
		t.Errorf("expected pre-configured attribute in output: %s", output)
	}
	if !strings.Contains(output, `"svc.http.port":8080`) {
		t.Errorf("expected grouped key in output: %s", output)
	}
}

func TestSlogHandler_GroupAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.Info("grouped", slog.Group("breaker", slog.String("state", "open"), slog.Int("failures", 3)))

	output := buf.String()
	if !strings.Contains(output, `"breaker.state":"open"`) || !strings.Contains(output, `"breaker.failures":3`) {
		t.Errorf("expected flattened group keys in output: %s", output)
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	handler := NewSlogHandler(zerolog.Nop())
	if got := handler.WithGroup(""); got != handler {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)

	SetLogger(zerolog.New(&buf))

	NewSlogLogger().Warn("via global")
	if !strings.Contains(buf.String(), "via global") {
		t.Errorf("expected message routed to global logger: %s", buf.String())
	}
}

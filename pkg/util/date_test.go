package util

import (
	"testing"
	"time"
)

func TestParseDayPadded(t *testing.T) {
	got, ok := ParseDay("2025-09-12")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseDayUnpadded(t *testing.T) {
	got, ok := ParseDay("2025-9-1")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseDayDefault(t *testing.T) {
	def := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := ParseDayDefault("not-a-date", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 30); got != 30 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("45", 30); got != 45 {
		t.Fatalf("expected 45, got %d", got)
	}
}

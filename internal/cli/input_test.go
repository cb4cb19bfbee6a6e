package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestPromptLine(t *testing.T) {
	var out bytes.Buffer
	got, err := promptLine(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "Name?") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestPromptLineEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := promptLine(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestPromptOptionalFallback(t *testing.T) {
	var out bytes.Buffer
	if got := promptOptional(rdr("\n"), "Date?", "today", &out); got != "today" {
		t.Fatalf("empty answer must fall back, got %q", got)
	}
	if got := promptOptional(rdr("2026-01-05\n"), "Date?", "today", &out); got != "2026-01-05" {
		t.Fatalf("answer must win over fallback, got %q", got)
	}
	if got := promptOptional(rdr(""), "Date?", "today", &out); got != "today" {
		t.Fatalf("EOF must fall back, got %q", got)
	}
}

func TestPromptPasswordError(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	if _, err := promptPassword(&out); err == nil {
		t.Fatal("expected error")
	}
}

package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkMessagePrefersNewlineBreaks(t *testing.T) {
	text := "line one\nline two\nline three"

	chunks := chunkMessage(text, 12)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %v", chunks)
	}
	if chunks[0] != "line one" {
		t.Errorf("expected cut at the newline, got %q", chunks[0])
	}
	for _, chunk := range chunks {
		if len(chunk) > 12 {
			t.Errorf("chunk exceeds limit: %q", chunk)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks do not reassemble to the original text")
	}
}

func TestChunkMessageForcedCutKeepsRunesIntact(t *testing.T) {
	// 💪 is 4 bytes; a limit of 10 never lands on a rune boundary, so
	// the forced cut must back off instead of splitting a character.
	text := strings.Repeat("💪", 20)

	chunks := chunkMessage(text, 10)
	for _, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk is not valid UTF-8: %q", chunk)
		}
		if len(chunk) > 10 {
			t.Errorf("chunk exceeds limit: %q", chunk)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks do not reassemble to the original text")
	}
}

func TestChunkMessageShortTextSingleChunk(t *testing.T) {
	chunks := chunkMessage("short plan", 4000)
	if len(chunks) != 1 || chunks[0] != "short plan" {
		t.Errorf("expected the text unchanged in one chunk, got %v", chunks)
	}
}

func TestChunkMessageDropsTrailingWhitespace(t *testing.T) {
	if chunks := chunkMessage("   \n  ", 4000); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace-only text, got %v", chunks)
	}
}

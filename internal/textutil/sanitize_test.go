package textutil

import (
	"strings"
	"testing"
)

func TestLabelLeavesSafeInput(t *testing.T) {
	input := "castle_v2.schem"
	if got := Label(input); got != input {
		t.Fatalf("expected %q to remain untouched, got %q", input, got)
	}
}

func TestLabelReplacesControlSequences(t *testing.T) {
	input := "bad\x1b[31m\nname\tx"
	got := Label(input)
	if got != "bad?[31m name x" {
		t.Fatalf("expected sanitized string \"bad?[31m name x\", got %q", got)
	}
	if containsControl(got) {
		t.Fatalf("sanitized text should not contain control characters: %q", got)
	}
}

func TestLabelReplacesC1Controls(t *testing.T) {
	got := Label("a\u009bb")
	if got != "a?b" {
		t.Fatalf("expected C1 control to be replaced, got %q", got)
	}
}

func TestLabelMarksFormattingRunes(t *testing.T) {
	input := "a" + string(rune(0x202E)) + "b" + string(rune(0x200B)) + "c"
	got := Label(input)
	if strings.ContainsRune(got, 0x202E) || strings.ContainsRune(got, 0x200B) {
		t.Fatalf("label left formatting runes in output: %q", got)
	}
	if !strings.Contains(got, "⟪RLO⟫") || !strings.Contains(got, "⟪ZWSP⟫") {
		t.Fatalf("expected formatting runes to be labeled, got %q", got)
	}
}

func TestLabelOr(t *testing.T) {
	if got := LabelOr("  ", "unknown"); got != "unknown" {
		t.Fatalf("LabelOr blank = %q, want fallback", got)
	}
	if got := LabelOr("alice", "unknown"); got != "alice" {
		t.Fatalf("LabelOr = %q, want alice", got)
	}
}

func TestHasFormattingRunes(t *testing.T) {
	if HasFormattingRunes("plain") {
		t.Fatalf("expected plain text to have no formatting runes")
	}
	if !HasFormattingRunes("hi" + string(rune(0x2067))) {
		t.Fatalf("expected formatting runes to be detected")
	}
}

func containsControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}

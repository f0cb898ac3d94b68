package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func choiceKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NumberKeySubmits(t *testing.T) {
	mc := NewMultiChoice("тау", []string{"river", "mountain", "sky", "stone"}, 1)

	mc, _ = mc.Update(choiceKey('2'))
	if !mc.Submitted {
		t.Fatal("expected number key to submit")
	}
	if mc.ChosenIndex != 1 {
		t.Errorf("ChosenIndex = %d, want 1", mc.ChosenIndex)
	}
}

func TestMultiChoice_NumberKeyOutOfRange(t *testing.T) {
	mc := NewMultiChoice("тау", []string{"river", "mountain"}, 1)

	mc, _ = mc.Update(choiceKey('9'))
	if mc.Submitted {
		t.Error("out-of-range number key should not submit")
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice("тау", []string{"river", "mountain", "sky"}, 2)

	mc, _ = mc.Update(choiceKey('j'))
	mc, _ = mc.Update(choiceKey('j'))
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !mc.Submitted || mc.ChosenIndex != 2 {
		t.Fatalf("Submitted=%v ChosenIndex=%d, want submitted index 2", mc.Submitted, mc.ChosenIndex)
	}

	// Frozen after submission.
	mc, _ = mc.Update(choiceKey('k'))
	if mc.ChosenIndex != 2 {
		t.Errorf("submitted component changed ChosenIndex to %d", mc.ChosenIndex)
	}
}

func TestMultiChoice_ViewNumbersOptions(t *testing.T) {
	mc := NewMultiChoice("тау", []string{"river", "mountain"}, 1)

	view := mc.View()
	for _, want := range []string{"1)", "2)", "river", "mountain"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

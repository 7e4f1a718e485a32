package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColorAndBounds(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, '@', ColorYellow)
	if c := s.GetCell(5, 5); c.Rune != '@' || c.Color != ColorYellow {
		t.Errorf("GetCell(5, 5) = %+v, expected yellow '@'", c)
	}

	s.Set(5, 5, 'x')
	if c := s.GetCell(5, 5); c.Color != ColorDefault {
		t.Error("Set should reset the colour to default")
	}

	// Out of bounds writes are ignored and reads are blank.
	s.Set(-1, 0, 'A')
	s.SetColor(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawTextColor(3, 1, "Hello", ColorCyan)

	if got := s.Row(1); got != "   Hel" {
		t.Errorf("Row(1) = %q, expected %q", got, "   Hel")
	}
	if s.GetCell(4, 1).Color != ColorCyan {
		t.Error("DrawTextColor should colour the text")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorGray)

	expected := "┌────┐\n│    │\n│    │\n└────┘"
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestScreenResizeAndClear(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawText(0, 0, "Hello")

	s.Resize(4, 2)
	if s.Row(0) != "Hell" {
		t.Errorf("after shrink Row(0) = %q", s.Row(0))
	}

	s.Resize(12, 5)
	if !strings.HasPrefix(s.Row(0), "Hell ") || len(s.Row(4)) != 12 {
		t.Errorf("after grow rows = %q / %q", s.Row(0), s.Row(4))
	}

	s.Clear()
	if strings.TrimSpace(s.String()) != "" {
		t.Error("Clear should blank the screen")
	}
	if s.Row(-1) != strings.Repeat(" ", 12) {
		t.Error("out of range Row should be spaces")
	}
}
